package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/statuskit/vigil/internal/adapters/http/api"
	"github.com/statuskit/vigil/internal/domain/model"
)

// mockDeps implements api.Dependencies with canned responses.
type mockDeps struct {
	report     model.StatusReport
	refreshOK  bool
	entries    []model.LogEntry
	lastLimit  int
	cleared    bool
	refreshHit bool
}

func (m *mockDeps) Status() model.StatusReport { return m.report }

func (m *mockDeps) Refresh(ctx context.Context) bool {
	m.refreshHit = true
	return m.refreshOK
}

func (m *mockDeps) Logs(ctx context.Context, n int) []model.LogEntry {
	m.lastLimit = n
	if n > 0 && n < len(m.entries) {
		return m.entries[:n]
	}
	return m.entries
}

func (m *mockDeps) ClearLogs(ctx context.Context) { m.cleared = true }

type mockStats struct{}

func (mockStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true, "journal_entries": 4}
}

func newTestMux(deps *mockDeps) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, mockStats{}, 1000).Register(context.Background(), mux)
	return mux
}

func operationalDeps() *mockDeps {
	return &mockDeps{
		report: model.StatusReport{
			Snapshot: model.HealthSnapshot{
				Status:              model.StatusOperational,
				ActiveConnections:   3,
				ComponentsAvailable: 7,
				ProjectsCreated:     12,
				ResponseTimeMS:      42,
				LastChecked:         time.Now(),
			},
			Hydrated: true,
		},
		refreshOK: true,
		entries: []model.LogEntry{
			{ID: "a", Level: model.LevelSuccess, Message: "Health check passed", Source: model.SourceHealthMonitor},
			{ID: "b", Level: model.LevelInfo, Message: "Status monitor started", Source: model.SourceSystem},
		},
	}
}

func TestStatusEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := operationalDeps()
		mux := newTestMux(deps)

		Convey("When GET /status is requested", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

			Convey("Then the snapshot is returned as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldStartWith, "application/json")

				var got map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got["hydrated"], ShouldBeTrue)
				So(got["checking"], ShouldBeFalse)

				snap, ok := got["snapshot"].(map[string]any)
				So(ok, ShouldBeTrue)
				So(snap["server_health"], ShouldEqual, "operational")
				So(snap["components_available"], ShouldEqual, 7)
				So(snap["response_time_ms"], ShouldEqual, 42)
			})

			Convey("And a clean report omits the error field", func() {
				So(rec.Body.String(), ShouldNotContainSubstring, `"error"`)
			})
		})

		Convey("When a failing report is served", func() {
			deps.report.Err = "liveness probe: connection refused"
			deps.report.Snapshot.Status = model.StatusDown
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

			Convey("Then the error field is present", func() {
				var got map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got["error"], ShouldEqual, "liveness probe: connection refused")
			})
		})

		Convey("When /status is requested with the wrong method", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/status", nil))

			Convey("Then it is not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestLogsEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := operationalDeps()
		mux := newTestMux(deps)

		Convey("When GET /logs is requested without a limit", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/logs", nil))

			Convey("Then all entries are returned with a count", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastLimit, ShouldEqual, 0)

				var got struct {
					Entries []model.LogEntry `json:"entries"`
					Count   int              `json:"count"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got.Count, ShouldEqual, 2)
				So(got.Entries[0].Message, ShouldEqual, "Health check passed")
			})
		})

		Convey("When GET /logs?limit=1 is requested", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/logs?limit=1", nil))

			Convey("Then the limit is forwarded and honored", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastLimit, ShouldEqual, 1)
			})
		})

		Convey("When the limit is not a positive integer", func() {
			for _, limit := range []string{"0", "-3", "abc"} {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/logs?limit="+limit, nil))
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "bad_request")
			}
		})

		Convey("When the limit exceeds the cap", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/logs?limit=1001", nil))

			Convey("Then the request is rejected as limit_exceeded", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "limit_exceeded")
			})
		})

		Convey("When the journal is empty", func() {
			deps.entries = nil
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/logs", nil))

			Convey("Then an empty array is returned, not null", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, `"entries":[]`)
			})
		})

		Convey("When DELETE /logs is requested", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/logs", nil))

			Convey("Then the journal is cleared", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.cleared, ShouldBeTrue)
				So(rec.Body.String(), ShouldContainSubstring, "cleared")
			})
		})

		Convey("When /logs is requested with an unsupported method", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/logs", nil))

			Convey("Then it is not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestRefreshEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := operationalDeps()
		mux := newTestMux(deps)

		Convey("When POST /refresh is accepted", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/refresh", nil))

			Convey("Then the check is queued", func() {
				So(rec.Code, ShouldEqual, http.StatusAccepted)
				So(deps.refreshHit, ShouldBeTrue)
				So(rec.Body.String(), ShouldContainSubstring, "accepted")
			})
		})

		Convey("When the trigger queue is full", func() {
			deps.refreshOK = false
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/refresh", nil))

			Convey("Then the request is rejected with backpressure", func() {
				So(rec.Code, ShouldEqual, http.StatusTooManyRequests)
				So(rec.Body.String(), ShouldContainSubstring, "backpressure")
			})
		})

		Convey("When /refresh is requested with the wrong method", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/refresh", nil))

			Convey("Then it is not found and nothing is queued", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
				So(deps.refreshHit, ShouldBeFalse)
			})
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(operationalDeps())

		Convey("When GET /stats is requested", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

			Convey("Then the provider stats are returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var got map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got["started"], ShouldBeTrue)
				So(got["journal_entries"], ShouldEqual, 4)
			})
		})
	})
}

func TestHealthzEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(operationalDeps())

		Convey("When GET /healthz is requested", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			Convey("Then the metrics exposition is served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.Len(), ShouldBeGreaterThan, 0)
			})
		})
	})
}
