package quality

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientPredictDecodesWireFormat(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"predictions":[
			{"Turbidity NTU": 18.5, "TSS mg/L": 42.0, "Chlorophyll ug/L": 3.1, "NDVI": 0.21, "NDWI": 0.48, "date": "2026-08-01"},
			{"Turbidity NTU": 27.2, "TSS mg/L": 55.5, "Chlorophyll ug/L": 4.4, "NDVI": 0.19, "NDWI": 0.52, "date": "2026-08-15"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nil)
	start := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	readings, err := client.Predict(context.Background(), [][]float64{{77.156, 28.7435}}, start, end)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	if gotBody["start_date"] != "2026-07-31" || gotBody["end_date"] != "2026-08-31" {
		t.Fatalf("unexpected date range in request: %v", gotBody)
	}
	if _, ok := gotBody["coordinates"]; !ok {
		t.Fatalf("request missing coordinates: %v", gotBody)
	}

	if len(readings) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(readings))
	}
	first := readings[0]
	if first.Turbidity != 18.5 || first.TSS != 42.0 || first.Chlorophyll != 3.1 {
		t.Fatalf("wire fields not mapped: %+v", first)
	}
	if first.Date != "2026-08-01" {
		t.Fatalf("expected date 2026-08-01, got %q", first.Date)
	}
}

func TestClientCurrentDecodesWireFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/currdate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if _, ok := body["start_date"]; ok {
			t.Errorf("current request must not carry a date range: %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Turbidity NTU": 31.0, "TSS mg/L": 60.2, "Chlorophyll ug/L": 5.0, "NDVI": 0.17, "NDWI": 0.55, "date": "2026-08-30"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nil)
	reading, err := client.Current(context.Background(), [][]float64{{77.156, 28.7435}})
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if reading.Turbidity != 31.0 || reading.NDWI != 0.55 {
		t.Fatalf("wire fields not mapped: %+v", reading)
	}
}

func TestClientSurfacesUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model blew up", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nil)
	if _, err := client.Current(context.Background(), [][]float64{{1, 2}}); err == nil {
		t.Fatalf("expected error from upstream 500")
	}
}
