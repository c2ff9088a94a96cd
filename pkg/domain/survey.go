package domain

import "time"

// DayLayout formats calendar-day identifiers.
const DayLayout = "2006-01-02"

// SurveyStatus is the durable record gating the daily survey prompt.
type SurveyStatus struct {
	HasShownNotification bool   `json:"hasShownNotification"`
	HasCompletedSurvey   bool   `json:"hasCompletedSurvey"`
	LastShownDate        string `json:"lastShownDate"`
}

// SurveyPatch is a partial update merged into a SurveyStatus. Nil fields are
// left untouched.
type SurveyPatch struct {
	HasShownNotification *bool
	HasCompletedSurvey   *bool
	LastShownDate        *string
}

// Apply returns s with every non-nil field of p merged in. A completed survey
// stays completed.
func (p SurveyPatch) Apply(s SurveyStatus) SurveyStatus {
	if p.HasShownNotification != nil {
		s.HasShownNotification = *p.HasShownNotification
	}
	if p.HasCompletedSurvey != nil {
		s.HasCompletedSurvey = s.HasCompletedSurvey || *p.HasCompletedSurvey
	}
	if p.LastShownDate != nil {
		s.LastShownDate = *p.LastShownDate
	}
	return s
}

// EligibleOn reports whether the prompt may fire on the given day.
func (s SurveyStatus) EligibleOn(day string) bool {
	return !s.HasCompletedSurvey && (!s.HasShownNotification || s.LastShownDate != day)
}

// DayOf returns the calendar-day identifier of t in t's own location.
func DayOf(t time.Time) string {
	return t.Format(DayLayout)
}

// ShownOn builds the patch recorded when the prompt fires on day.
func ShownOn(day string) SurveyPatch {
	shown := true
	return SurveyPatch{HasShownNotification: &shown, LastShownDate: &day}
}

// CompletedOn builds the patch recorded when the survey is completed on day.
func CompletedOn(day string) SurveyPatch {
	done := true
	return SurveyPatch{HasCompletedSurvey: &done, LastShownDate: &day}
}
