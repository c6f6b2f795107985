package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Saksham932007/Attendance/internal/types"
	"github.com/gorilla/websocket"
)

func TestGenerateSampleQuery(t *testing.T) {
	var gotQuery, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"message":"Sample data generated successfully","employees_count":5,"records_count":25}`))
	}))
	defer srv.Close()

	seed := int64(9)
	resp, err := NewClient(srv.URL+"/").GenerateSample(context.Background(), SampleOptions{Employees: 5, Days: 7, Seed: &seed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("expected POST, got %s", gotMethod)
	}
	if gotQuery != "days=7&employees=5&seed=9" {
		t.Errorf("unexpected query %q", gotQuery)
	}
	if resp.Employees != 5 || resp.Records != 25 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestUploadSendsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/upload-attendance" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		var data types.AttendanceData
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			t.Errorf("failed to decode upload: %v", err)
		}
		if len(data.Employees) != 1 {
			t.Errorf("expected one employee, got %d", len(data.Employees))
		}
		w.Write([]byte(`{"message":"ok","employees_count":1,"records_count":0}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Upload(context.Background(), &types.AttendanceData{
		Employees: []types.Employee{{EmployeeID: "E1", Name: "A"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"json error body", `{"error":"No analysis results found."}`, "No analysis results found."},
		{"plain body", "gateway timeout\n", "gateway timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).Report(context.Background())

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != tt.message {
				t.Errorf("unexpected error %+v", apiErr)
			}
		})
	}
}

func TestEmployeeEscapesID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"employee":{"employee_id":"A B"},"attendance_records":[]}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).Employee(context.Background(), "A B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/api/employees/A%20B" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if resp.Employee.EmployeeID != "A B" {
		t.Errorf("unexpected employee %+v", resp.Employee)
	}
}

func TestResetDatasetUsesDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/dataset" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Write([]byte(`{"message":"dataset reset"}`))
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).ResetDataset(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWebsocketURL(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"http://localhost:8001", "ws://localhost:8001/ws"},
		{"https://attendance.example.com/", "wss://attendance.example.com/ws"},
		{"http://proxy/analyzer", "ws://proxy/analyzer/ws"},
	}

	for _, tt := range tests {
		got, err := NewClient(tt.base).websocketURL()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.base, err)
		}
		if got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.base, got, tt.want)
		}
	}
}

func TestWatchStreamsEvents(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.WriteJSON(types.AnalysisStarted{Type: types.EventAnalysisStarted, RunID: "r1", Total: 2})
		conn.WriteMessage(websocket.TextMessage, []byte("not json"))
		conn.WriteJSON(types.AnalysisCompleted{Type: types.EventAnalysisCompleted, RunID: "r1"})
		// hold the connection open until the client hangs up
		conn.ReadMessage()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var seen []string
	done := errors.New("done")
	err := NewClient(srv.URL).Watch(ctx, func(ev Event) error {
		seen = append(seen, ev.Type)
		if ev.Type == types.EventAnalysisCompleted {
			return done
		}
		return nil
	})

	if !errors.Is(err, done) {
		t.Fatalf("expected handler error to end the watch, got %v", err)
	}
	if strings.Join(seen, ",") != "analysis_started,analysis_completed" {
		t.Errorf("unexpected events %v", seen)
	}
}
