package analytics

import (
	"sort"
	"strings"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
)

// VolumeData is the facility volume attributed to one provider's shifts
type VolumeData struct {
	Provider    string  `json:"Provider"`
	MD1Volume   float64 `json:"MD1_Volume"`
	MD2Volume   float64 `json:"MD2_Volume"`
	PMVolume    float64 `json:"PM_Volume"`
	TotalVolume float64 `json:"Total_Volume"`
	NCShiftsMD1 int     `json:"NC_Shifts_MD1"`
	NCShiftsMD2 int     `json:"NC_Shifts_MD2"`
	NCShiftsPM  int     `json:"NC_Shifts_PM"`
}

// For returns the attributed volume for a shift type
func (v VolumeData) For(st model.ShiftType) float64 {
	switch st {
	case model.ShiftMD1:
		return v.MD1Volume
	case model.ShiftMD2:
		return v.MD2Volume
	case model.ShiftPM:
		return v.PMVolume
	default:
		return 0
	}
}

func (v *VolumeData) credit(st model.ShiftType, volume *float64) {
	if volume == nil {
		switch st {
		case model.ShiftMD1:
			v.NCShiftsMD1++
		case model.ShiftMD2:
			v.NCShiftsMD2++
		case model.ShiftPM:
			v.NCShiftsPM++
		}
		return
	}

	switch st {
	case model.ShiftMD1:
		v.MD1Volume += *volume
	case model.ShiftMD2:
		v.MD2Volume += *volume
	case model.ShiftPM:
		v.PMVolume += *volume
	}
	v.TotalVolume += *volume
}

// volumeIndex looks facilities up by exact name, then case-insensitively
type volumeIndex struct {
	exact  map[string]model.FacilityVolume
	folded map[string]model.FacilityVolume
}

func newVolumeIndex(volumes []model.FacilityVolume) volumeIndex {
	idx := volumeIndex{
		exact:  make(map[string]model.FacilityVolume, len(volumes)),
		folded: make(map[string]model.FacilityVolume, len(volumes)),
	}
	for _, v := range volumes {
		idx.exact[v.Facility] = v
		key := strings.ToLower(strings.TrimSpace(v.Facility))
		if _, ok := idx.folded[key]; !ok {
			idx.folded[key] = v
		}
	}
	return idx
}

func (idx volumeIndex) lookup(site string, st model.ShiftType) *float64 {
	if v, ok := idx.exact[site]; ok {
		return v.ForShift(st)
	}
	if v, ok := idx.folded[strings.ToLower(strings.TrimSpace(site))]; ok {
		return v.ForShift(st)
	}
	return nil
}

// AttributeVolume credits each provider with the facility volume of every
// site-shift-day they worked. A site with no volume figure for the shift type,
// or missing from the table, counts as an NC shift instead.
func AttributeVolume(entries []model.ScheduleEntry, volumes []model.FacilityVolume) []VolumeData {
	idx := newVolumeIndex(volumes)

	type creditKey struct {
		provider string
		site     string
		shift    model.ShiftType
		day      string
	}
	credited := make(map[creditKey]bool)

	var data []*VolumeData
	byProvider := make(map[string]*VolumeData)

	for _, e := range entries {
		if !e.Counts() || !e.ShiftType.IsCounted() {
			continue
		}
		key := creditKey{e.ProviderID, e.SiteID, e.ShiftType, e.Date.Format("2006-01-02")}
		if credited[key] {
			continue
		}
		credited[key] = true

		v, ok := byProvider[e.ProviderID]
		if !ok {
			v = &VolumeData{Provider: e.ProviderName}
			byProvider[e.ProviderID] = v
			data = append(data, v)
		}
		v.credit(e.ShiftType, idx.lookup(e.SiteName, e.ShiftType))
	}

	result := make([]VolumeData, len(data))
	for i, v := range data {
		result[i] = *v
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalVolume > result[j].TotalVolume
	})

	return result
}

// FindVolume looks up a provider's volume record by name
func FindVolume(data []VolumeData, provider string) (VolumeData, bool) {
	for _, v := range data {
		if v.Provider == provider {
			return v, true
		}
	}
	return VolumeData{}, false
}
