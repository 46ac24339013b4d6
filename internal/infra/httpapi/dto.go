package httpapi

import (
	"time"

	"rider_slip_service/internal/domain/branch"
	"rider_slip_service/internal/domain/changereq"
	"rider_slip_service/internal/domain/slip"
	"rider_slip_service/internal/domain/week"
)

type slipResponse struct {
	ID            int64     `json:"id"`
	BranchCode    string    `json:"branchCode"`
	RiderID       int64     `json:"riderId"`
	Category      string    `json:"category"`
	Quantity      int       `json:"quantity"`
	TransactionID string    `json:"transactionId"`
	Fingerprint   string    `json:"fingerprint"`
	StoredRef     string    `json:"storedRef"`
	ManagerName   string    `json:"managerName"`
	WeekLabel     string    `json:"weekLabel"`
	Commission    int64     `json:"commissionMinor"`
	Status        string    `json:"status"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

func toSlipResponse(e *slip.Entry) slipResponse {
	return slipResponse{
		ID:            e.ID,
		BranchCode:    e.BranchCode,
		RiderID:       e.RiderID,
		Category:      string(e.Category),
		Quantity:      e.Quantity,
		TransactionID: e.TransactionID,
		Fingerprint:   e.Fingerprint.Hex(),
		StoredRef:     e.StoredRef,
		ManagerName:   e.ManagerName,
		WeekLabel:     e.WeekLabel,
		Commission:    e.Commission,
		Status:        string(e.Status),
		SubmittedAt:   e.SubmittedAt,
	}
}

func toSlipResponses(entries []*slip.Entry) []slipResponse {
	out := make([]slipResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toSlipResponse(e))
	}
	return out
}

type weekResponse struct {
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func toWeekResponses(weeks []week.Range) []weekResponse {
	out := make([]weekResponse, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, weekResponse{
			Label: w.Label(),
			Start: w.Start.Format("2006-01-02"),
			End:   w.End.Format("2006-01-02"),
		})
	}
	return out
}

type branchResponse struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func toBranchResponses(branches []*branch.Branch) []branchResponse {
	out := make([]branchResponse, 0, len(branches))
	for _, b := range branches {
		out = append(out, branchResponse{Code: b.Code, Name: b.Name, CreatedAt: b.CreatedAt})
	}
	return out
}

type riderResponse struct {
	ID         int64  `json:"id"`
	BranchCode string `json:"branchCode"`
	Name       string `json:"name"`
	IsActive   bool   `json:"isActive"`
}

func toRiderResponses(riders []*branch.Rider) []riderResponse {
	out := make([]riderResponse, 0, len(riders))
	for _, r := range riders {
		out = append(out, riderResponse{ID: r.ID, BranchCode: r.BranchCode, Name: r.Name, IsActive: r.IsActive})
	}
	return out
}

type changeRequestResponse struct {
	ID          int64     `json:"id"`
	BranchCode  string    `json:"branchCode"`
	SubmittedBy string    `json:"submittedBy"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toChangeRequestResponse(cr *changereq.Request) changeRequestResponse {
	return changeRequestResponse{
		ID:          cr.ID,
		BranchCode:  cr.BranchCode,
		SubmittedBy: cr.SubmittedBy,
		Message:     cr.Message,
		Status:      string(cr.Status),
		CreatedAt:   cr.CreatedAt,
	}
}

func toChangeRequestResponses(requests []*changereq.Request) []changeRequestResponse {
	out := make([]changeRequestResponse, 0, len(requests))
	for _, cr := range requests {
		out = append(out, toChangeRequestResponse(cr))
	}
	return out
}
