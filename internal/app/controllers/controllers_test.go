package controllers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/cutoffpredictor/internal/app/models/dto"
	"github.com/yigit/cutoffpredictor/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubPredictionService struct {
	resp  *dto.PredictionResponse
	err   error
	got   dto.PredictRequest
	calls int
}

func (s *stubPredictionService) PredictColleges(_ context.Context, req dto.PredictRequest) (*dto.PredictionResponse, error) {
	s.calls++
	s.got = req
	return s.resp, s.err
}

type stubBranchService struct {
	branches []dto.BranchResponse
	err      error
}

func (s *stubBranchService) GetAllBranches(context.Context) ([]dto.BranchResponse, error) {
	return s.branches, s.err
}

func serve(h gin.HandlerFunc, method, body string) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, "/", h)
	req := httptest.NewRequest(method, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPredictCollegesSuccess(t *testing.T) {
	svc := &stubPredictionService{resp: &dto.PredictionResponse{
		Colleges: []dto.CollegeResult{{
			CollegeName: "COEP", BranchName: "Computer Engineering", FeesPerYear: 90000,
			ClosingPercentile: 92.5, Location: "Pune", RoundNumber: 1,
		}},
		TotalFound: 1,
		Criteria:   dto.CriteriaEcho{Percentile: 92.5, Category: "OPEN", Domicile: "Maharashtra", BranchesSearched: 1},
	}}
	c := NewPredictionController(svc)

	w := serve(c.PredictColleges, http.MethodPost,
		`{"percentile":"92.5","category":"OPEN","domicile":"Maharashtra","branch_ids":["cs"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"colleges":[{"college_name":"COEP","branch_name":"Computer Engineering","fees_per_year":90000,
			"closing_percentile":92.5,"location":"Pune","round_number":1}],
		"total_found":1,
		"criteria":{"percentile":92.5,"category":"OPEN","domicile":"Maharashtra","branches_searched":1}
	}`, w.Body.String())

	require.NotNil(t, svc.got.Percentile)
	assert.Equal(t, "92.5", svc.got.Percentile.String())
	assert.Equal(t, []string{"cs"}, svc.got.BranchIDs)
}

func TestPredictCollegesBadBodyNeverReachesService(t *testing.T) {
	svc := &stubPredictionService{}
	c := NewPredictionController(svc)

	for _, body := range []string{"", "{", `{"percentile":true}`, `{"branch_ids":"cs"}`} {
		w := serve(c.PredictColleges, http.MethodPost, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error":"Missing required parameters"}`, w.Body.String(), body)
	}
	assert.Zero(t, svc.calls)
}

func TestPredictCollegesMapsServiceErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{apperrors.NewInvalidCriteriaError("domicile", "is invalid"), http.StatusBadRequest, `{"error":"Missing required parameters"}`},
		{apperrors.NewUnavailableError("fetch cutoffs", errors.New("down")), http.StatusInternalServerError, `{"error":"Database query failed"}`},
		{apperrors.NewIntegrityError("c1", "branch", "b9"), http.StatusInternalServerError, `{"error":"Database query failed"}`},
		{errors.New("unexpected"), http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}

	for _, tc := range cases {
		c := NewPredictionController(&stubPredictionService{err: tc.err})
		w := serve(c.PredictColleges, http.MethodPost, `{}`)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		assert.JSONEq(t, tc.body, w.Body.String(), tc.err.Error())
	}
}

func TestGetAllBranches(t *testing.T) {
	c := NewBranchController(&stubBranchService{branches: []dto.BranchResponse{{ID: "1", Name: "Civil Engineering", Code: "CIVIL"}}})
	w := serve(c.GetAllBranches, http.MethodGet, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[{"id":"1","branch_name":"Civil Engineering","branch_code":"CIVIL"}]`)

	c = NewBranchController(&stubBranchService{err: apperrors.NewUnavailableError("query branches", errors.New("down"))})
	w = serve(c.GetAllBranches, http.MethodGet, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"SRV_002"`)
}
