package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	dtocommon "schnorr-batch/pkg/dto_common"
	"schnorr-batch/src/history"
	"schnorr-batch/src/model"
	"schnorr-batch/src/types/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	fileRuns   int
	records    []domain.Record
	requestIds []string
}

func (s *stubService) RunFromFiles(ctx context.Context, requestId, source string) dtocommon.BatchVerificationResultDto {
	s.fileRuns++
	s.requestIds = append(s.requestIds, requestId)
	return dtocommon.BatchVerificationResultDto{RequestId: requestId, Status: dtocommon.StatusSuccess, Success: true}
}

func (s *stubService) RunRecords(ctx context.Context, requestId string, recs []domain.Record, source string) dtocommon.BatchVerificationResultDto {
	s.records = recs
	s.requestIds = append(s.requestIds, requestId)
	return dtocommon.BatchVerificationResultDto{
		RequestId: requestId,
		Status:    dtocommon.StatusFailed,
		Outcome:   "rejected",
		Records:   len(recs),
	}
}

type stubRuns struct {
	runs []model.BatchRun
}

func (s *stubRuns) RecordRun(result dtocommon.BatchVerificationResultDto, source string) error {
	return nil
}

func (s *stubRuns) GetRuns(limit, offset int) ([]model.BatchRun, error) {
	return s.runs, nil
}

func (s *stubRuns) GetRunsByOutcome(outcome string, limit, offset int) ([]model.BatchRun, error) {
	var out []model.BatchRun
	for _, r := range s.runs {
		if r.Outcome == outcome {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubRuns) GetRun(runId string) (model.BatchRun, error) {
	for _, r := range s.runs {
		if r.RunId == runId {
			return r, nil
		}
	}
	return model.BatchRun{}, history.ErrRunNotFound
}

func newRouter(h *BatchHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/batch/verify-json", h.VerifyFromFiles)
	r.POST("/v1/batch/verify", h.VerifyRecords)
	r.GET("/v1/batch/runs", h.GetRuns)
	r.GET("/v1/batch/runs/:run_id", h.GetRun)
	return r
}

func serve(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestVerifyFromFiles(t *testing.T) {
	svc := &stubService{}
	r := newRouter(NewBatchHandler(svc, nil))

	w := serve(r, http.MethodPost, "/v1/batch/verify-json?request_id=abc", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var result dtocommon.BatchVerificationResultDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "abc", result.RequestId)
	assert.Equal(t, 1, svc.fileRuns)
}

func TestVerifyRecords(t *testing.T) {
	svc := &stubService{}
	r := newRouter(NewBatchHandler(svc, nil))

	body := []byte(`{"records":[{"secret":"hr@acme.example","subject_id":"did:example:1"},{"secret":"hr@acme.example","subject_id":"did:example:2"}]}`)
	w := serve(r, http.MethodPost, "/v1/batch/verify", body)

	require.Equal(t, http.StatusOK, w.Code)
	var result dtocommon.BatchVerificationResultDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "rejected", result.Outcome)
	assert.Equal(t, 2, result.Records)
	assert.NotEmpty(t, result.RequestId)

	require.Len(t, svc.records, 2)
	assert.Equal(t, "did:example:2", svc.records[1].SubjectID)
	assert.Equal(t, "hr@acme.example", svc.records[0].Secret)
}

func TestVerifyRecordsUseFiles(t *testing.T) {
	svc := &stubService{}
	r := newRouter(NewBatchHandler(svc, nil))

	w := serve(r, http.MethodPost, "/v1/batch/verify", []byte(`{"request_id":"r1","use_files":true}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.fileRuns)
	assert.Equal(t, []string{"r1"}, svc.requestIds)
}

func TestVerifyRecordsBadRequests(t *testing.T) {
	r := newRouter(NewBatchHandler(&stubService{}, nil))

	for _, body := range []string{`{"records":`, `{"records":[]}`} {
		w := serve(r, http.MethodPost, "/v1/batch/verify", []byte(body))
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestRunEndpoints(t *testing.T) {
	runs := &stubRuns{runs: []model.BatchRun{
		{RunId: "run-1", Outcome: "success", Success: true},
		{RunId: "run-2", Outcome: "aborted"},
	}}
	r := newRouter(NewBatchHandler(&stubService{}, runs))

	w := serve(r, http.MethodGet, "/v1/batch/runs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []model.BatchRun
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	w = serve(r, http.MethodGet, "/v1/batch/runs?outcome=aborted", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var aborted []model.BatchRun
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &aborted))
	require.Len(t, aborted, 1)
	assert.Equal(t, "run-2", aborted[0].RunId)

	w = serve(r, http.MethodGet, "/v1/batch/runs?limit=5000", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodGet, "/v1/batch/runs/run-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var one model.BatchRun
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &one))
	assert.True(t, one.Success)

	w = serve(r, http.MethodGet, "/v1/batch/runs/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRunEndpointsWithoutHistory(t *testing.T) {
	r := newRouter(NewBatchHandler(&stubService{}, nil))

	assert.Equal(t, http.StatusServiceUnavailable, serve(r, http.MethodGet, "/v1/batch/runs", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(r, http.MethodGet, "/v1/batch/runs/x", nil).Code)
}
