package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fundroom/crm-api/internal/model"
	"github.com/fundroom/crm-api/internal/target"
)

type targetAddRequest struct {
	UserID    int64                `json:"userId"`
	Month     string               `json:"month"`
	StartDate string               `json:"startDate"`
	EndDate   string               `json:"endDate"`
	Targets   []model.TargetUpsert `json:"targets"`
}

type targetRangeResponse struct {
	Success   bool          `json:"success"`
	StartDate string        `json:"startDate"`
	EndDate   string        `json:"endDate"`
	Days      []target.Day  `json:"days"`
	Totals    target.Totals `json:"totals"`
}

type c1Day struct {
	Date     string `json:"date"`
	Day      string `json:"day"`
	C1Target int    `json:"c1Target"`
	Achieved int    `json:"achieved"`
}

type c1Totals struct {
	C1Target int `json:"c1Target"`
	Achieved int `json:"achieved"`
}

type c1StatusCounts struct {
	CNA           int `json:"cna"`
	SwitchOff     int `json:"switchOff"`
	NotInterested int `json:"notInterested"`
	WrongNumber   int `json:"wrongNumber"`
}

type c1Response struct {
	Success   bool           `json:"success"`
	StartDate string         `json:"startDate"`
	EndDate   string         `json:"endDate"`
	Days      []c1Day        `json:"days"`
	Totals    c1Totals       `json:"totals"`
	Statuses  c1StatusCounts `json:"statuses"`
}

// targetUser resolves the subject user: an explicit id wins, then the
// authenticated caller.
func targetUser(r *http.Request, explicit int64) (int64, bool) {
	if explicit > 0 {
		return explicit, true
	}
	if id := callerID(r.Context()); id != nil {
		return *id, true
	}
	return 0, false
}

// handleTargetAdd upserts the provided per-day targets, then returns the
// calendar-merged range with totals.
func (s *Server) handleTargetAdd(w http.ResponseWriter, r *http.Request) {
	var req targetAddRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	userID, ok := targetUser(r, req.UserID)
	if !ok {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	from, to, err := target.ResolveRange(req.Month, req.StartDate, req.EndDate, time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date range")
		return
	}

	for _, t := range req.Targets {
		if _, err := time.Parse("2006-01-02", t.TargetDate); err != nil {
			writeError(w, http.StatusBadRequest, "invalid target date: "+t.TargetDate)
			return
		}
		t.UserID = userID
		if err := s.store.UpsertTarget(r.Context(), t); err != nil {
			writeStoreError(w, err)
			return
		}
	}

	s.respondTargetRange(w, r, userID, from, to, http.StatusCreated)
}

// handleTargetFetch returns the calendar-merged range without writing.
func (s *Server) handleTargetFetch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	explicit, _ := strconv.ParseInt(q.Get("userId"), 10, 64)
	userID, ok := targetUser(r, explicit)
	if !ok {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	from, to, err := target.ResolveRange(q.Get("month"), q.Get("startDate"), q.Get("endDate"), time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date range")
		return
	}

	s.respondTargetRange(w, r, userID, from, to, http.StatusOK)
}

func (s *Server) respondTargetRange(w http.ResponseWriter, r *http.Request, userID int64, from, to time.Time, status int) {
	days, err := s.mergedDays(r, userID, from, to)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, status, targetRangeResponse{
		Success:   true,
		StartDate: from.Format("2006-01-02"),
		EndDate:   to.Format("2006-01-02"),
		Days:      days,
		Totals:    target.Sum(days),
	})
}

func (s *Server) mergedDays(r *http.Request, userID int64, from, to time.Time) ([]target.Day, error) {
	stored, err := s.store.ListTargets(r.Context(), userID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	return target.Merge(target.Calendar(from, to), stored), nil
}

// handleTargetC1 reports per-day C1 targets against achieved counts, plus
// how the range's connects broke down across the dead-end statuses.
func (s *Server) handleTargetC1(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	explicit, _ := strconv.ParseInt(q.Get("userId"), 10, 64)
	userID, ok := targetUser(r, explicit)
	if !ok {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	from, to, err := target.ResolveRange(q.Get("month"), q.Get("startDate"), q.Get("endDate"), time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date range")
		return
	}

	merged, err := s.mergedDays(r, userID, from, to)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	resp := c1Response{
		Success:   true,
		StartDate: from.Format("2006-01-02"),
		EndDate:   to.Format("2006-01-02"),
		Days:      make([]c1Day, 0, len(merged)),
	}

	for _, d := range merged {
		achieved, err := s.store.CountLeadsByStatus(r.Context(), userID, "C1 Scheduled", d.Date, d.Date)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		resp.Days = append(resp.Days, c1Day{
			Date:     d.Date,
			Day:      d.Day,
			C1Target: d.C1Target,
			Achieved: achieved,
		})
		resp.Totals.C1Target += d.C1Target
		resp.Totals.Achieved += achieved
	}

	fromStr, toStr := from.Format("2006-01-02"), to.Format("2006-01-02")
	for status, dst := range map[string]*int{
		"CNA":            &resp.Statuses.CNA,
		"Switch Off":     &resp.Statuses.SwitchOff,
		"Not Interested": &resp.Statuses.NotInterested,
		"Wrong Number":   &resp.Statuses.WrongNumber,
	} {
		n, err := s.store.CountLeadsByStatus(r.Context(), userID, status, fromStr, toStr)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		*dst = n
	}

	writeJSON(w, http.StatusOK, resp)
}
