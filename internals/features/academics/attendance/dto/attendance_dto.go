package dto

import (
	"github.com/google/uuid"

	service "academyhub_backend/internals/features/academics/attendance/service"
)

type SessionResponse struct {
	Kind    string  `json:"kind"` // real | placeholder
	Label   string  `json:"label"`
	Date    *string `json:"date,omitempty"`
	Ordinal *int    `json:"ordinal,omitempty"`
}

func NewSessionResponse(ref service.SessionRef) SessionResponse {
	out := SessionResponse{
		Kind:  string(ref.Kind),
		Label: ref.Label(),
	}
	if ref.Kind == service.SessionKindReal {
		d := ref.Date.Format(service.SessionDateLayout)
		out.Date = &d
	} else {
		n := ref.Ordinal
		out.Ordinal = &n
	}
	return out
}

func NewSessionResponses(refs []service.SessionRef) []SessionResponse {
	out := make([]SessionResponse, 0, len(refs))
	for _, ref := range refs {
		out = append(out, NewSessionResponse(ref))
	}
	return out
}

type CreateSessionRequest struct {
	SessionDate string `json:"session_date" validate:"required"`
}

type SaveAttendanceRequest struct {
	SessionDate       string             `json:"session_date" validate:"required"`
	PresenceByStudent map[uuid.UUID]bool `json:"presence_by_student" validate:"required"`
}

type GridResponse struct {
	Students       []service.GridStudent `json:"students"`
	Sessions       []SessionResponse     `json:"sessions"`
	PresenceMatrix [][]bool              `json:"presence_matrix"`
	PerStudentRate []float64             `json:"per_student_rate"`
	OverallRate    float64               `json:"overall_rate"`
}

func NewGridResponse(g *service.AttendanceGrid) GridResponse {
	return GridResponse{
		Students:       g.Students,
		Sessions:       NewSessionResponses(g.Sessions),
		PresenceMatrix: g.Presence,
		PerStudentRate: g.StudentRates,
		OverallRate:    g.OverallRate,
	}
}
