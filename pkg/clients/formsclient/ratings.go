package formsclient

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"google.golang.org/api/forms/v1"
)

// RatingResponse is one submission of the happiness form
type RatingResponse struct {
	ResponseID  string
	Respondent  string
	Provider    string
	Rating      string
	SubmittedAt time.Time
}

// questionIDs maps the provider and rating questions to their IDs
type questionIDs struct {
	provider string
	rating   string
}

// GetRatingResponses lists every response to a happiness form, oldest first.
// The form must collect respondent emails and have a question whose title
// mentions "provider" and one mentioning "rating" or "happy".
func (c *Client) GetRatingResponses(formID string) ([]RatingResponse, error) {
	form, err := c.service.Forms.Get(formID).Context(c.ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	ids, err := findQuestions(form.Items)
	if err != nil {
		return nil, err
	}

	var all []*forms.FormResponse
	pageToken := ""
	for {
		call := c.service.Forms.Responses.List(formID).Context(c.ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		page, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list form responses: %w", err)
		}
		all = append(all, page.Responses...)
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	return parseRatingResponses(ids, all), nil
}

func findQuestions(items []*forms.Item) (questionIDs, error) {
	var ids questionIDs
	for _, item := range items {
		if item == nil || item.QuestionItem == nil || item.QuestionItem.Question == nil {
			continue
		}
		title := strings.ToLower(item.Title)
		id := item.QuestionItem.Question.QuestionId
		switch {
		case ids.provider == "" && strings.Contains(title, "provider"):
			ids.provider = id
		case ids.rating == "" && (strings.Contains(title, "rating") || strings.Contains(title, "happy")):
			ids.rating = id
		}
	}

	if ids.provider == "" || ids.rating == "" {
		return questionIDs{}, fmt.Errorf("form has no provider and rating questions")
	}
	return ids, nil
}

func parseRatingResponses(ids questionIDs, responses []*forms.FormResponse) []RatingResponse {
	parsed := make([]RatingResponse, 0, len(responses))
	for _, resp := range responses {
		if resp == nil {
			continue
		}
		submitted, _ := time.Parse(time.RFC3339, resp.LastSubmittedTime)
		parsed = append(parsed, RatingResponse{
			ResponseID:  resp.ResponseId,
			Respondent:  strings.TrimSpace(resp.RespondentEmail),
			Provider:    firstText(resp.Answers, ids.provider),
			Rating:      firstText(resp.Answers, ids.rating),
			SubmittedAt: submitted,
		})
	}

	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].SubmittedAt.Before(parsed[j].SubmittedAt)
	})
	return parsed
}

func firstText(answers map[string]forms.Answer, questionID string) string {
	answer, ok := answers[questionID]
	if !ok || answer.TextAnswers == nil {
		return ""
	}
	for _, a := range answer.TextAnswers.Answers {
		if a != nil && strings.TrimSpace(a.Value) != "" {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}
