package api

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/plantdesk/internal/testutil"
)

// testEnv builds a router over a fresh page service with rate limiting off.
func testEnv(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(testutil.TestService(t), nil, 0, 0)
}

type pageResponse struct {
	Session string          `json:"session"`
	Route   string          `json:"route"`
	ID      string          `json:"id"`
	Changed bool            `json:"changed"`
	View    json.RawMessage `json:"view"`
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) pageResponse {
	t.Helper()
	var res pageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return res
}

func openRoute(t *testing.T, h http.Handler, route string) string {
	t.Helper()
	w := do(t, h, http.MethodPost, "/routes/"+route, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("open %s status = %d, body = %s", route, w.Code, w.Body.String())
	}
	return decodePage(t, w).Session
}

type batchRow struct {
	ID        string   `json:"id"`
	Status    string   `json:"status"`
	Progress  int      `json:"progress"`
	StartTime string   `json:"startTime"`
	Actions   []string `json:"actions"`
}

func batchRows(t *testing.T, res pageResponse) map[string]batchRow {
	t.Helper()
	var v struct {
		Rows []batchRow `json:"rows"`
	}
	if err := json.Unmarshal(res.View, &v); err != nil {
		t.Fatal(err)
	}
	out := make(map[string]batchRow, len(v.Rows))
	for _, r := range v.Rows {
		out[r.ID] = r
	}
	return out
}

func TestListRoutes(t *testing.T) {
	router := testEnv(t)
	w := do(t, router, http.MethodGet, "/routes", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp RoutesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Routes) != 7 || resp.Routes[0].Path != "/" {
		t.Errorf("routes = %+v", resp.Routes)
	}
}

func TestOpenUnknownRoute(t *testing.T) {
	router := testEnv(t)
	w := do(t, router, http.MethodPost, "/routes/warehouse", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	res := decodePage(t, w)
	if res.Route != "not-found" || !strings.Contains(string(res.View), "Oops! Page not found") {
		t.Errorf("result = %+v %s", res, res.View)
	}
}

func TestBatchLifecycle(t *testing.T) {
	router := testEnv(t)
	sid := openRoute(t, router, "batching")

	w := do(t, router, http.MethodPost, "/sessions/"+sid+"/records/B-2403/start", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("start status = %d, body = %s", w.Code, w.Body.String())
	}
	got := batchRows(t, decodePage(t, w))["B-2403"]
	want := batchRow{ID: "B-2403", Status: "in-progress", Progress: 10, StartTime: "02:30 PM", Actions: []string{"complete"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("after start (-want +got):\n%s", diff)
	}

	w = do(t, router, http.MethodPost, "/sessions/"+sid+"/records/B-2403/start", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("restart status = %d, want 409", w.Code)
	}

	w = do(t, router, http.MethodPost, "/sessions/"+sid+"/records/B-2403/complete", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("complete status = %d", w.Code)
	}
	got = batchRows(t, decodePage(t, w))["B-2403"]
	if got.Status != "completed" || got.Progress != 100 || len(got.Actions) != 0 {
		t.Errorf("after complete = %+v", got)
	}
}

func TestMissingRecordIsNoop(t *testing.T) {
	router := testEnv(t)
	sid := openRoute(t, router, "inventory")

	w := do(t, router, http.MethodDelete, "/sessions/"+sid+"/records/99", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if decodePage(t, w).Changed {
		t.Error("deleting a missing record reported a change")
	}
}

func TestFormFlow(t *testing.T) {
	router := testEnv(t)
	sid := openRoute(t, router, "menu-items")
	base := "/sessions/" + sid

	w := do(t, router, http.MethodPost, base+"/form/save", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("save without form status = %d, want 409", w.Code)
	}

	w = do(t, router, http.MethodPost, base+"/form", OpenFormRequest{Mode: "add"})
	if w.Code != http.StatusOK {
		t.Fatalf("open form status = %d, body = %s", w.Code, w.Body.String())
	}
	w = do(t, router, http.MethodPatch, base+"/form", FieldRequest{Field: "name", Value: "Rye Bread"})
	if w.Code != http.StatusOK {
		t.Fatalf("set field status = %d", w.Code)
	}
	w = do(t, router, http.MethodPatch, base+"/form", FieldRequest{Field: "colour", Value: "red"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown field status = %d, want 400", w.Code)
	}

	w = do(t, router, http.MethodPost, base+"/form/save", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d", w.Code)
	}
	res := decodePage(t, w)
	if res.ID == "" || !strings.Contains(string(res.View), "Rye Bread") {
		t.Errorf("save result = %+v", res)
	}
}

func TestOpenFormValidation(t *testing.T) {
	router := testEnv(t)
	sid := openRoute(t, router, "menu-items")

	tests := []struct {
		name string
		body any
	}{
		{"bad mode", map[string]string{"mode": "clone"}},
		{"edit without id", map[string]string{"mode": "edit"}},
		{"unknown key", map[string]string{"mode": "add", "colour": "red"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodPost, "/sessions/"+sid+"/form", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestRecipeRows(t *testing.T) {
	router := testEnv(t)
	sid := openRoute(t, router, "recipes")
	base := "/sessions/" + sid

	w := do(t, router, http.MethodPost, base+"/form/ingredients", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("row edit without form status = %d, want 409", w.Code)
	}

	do(t, router, http.MethodPost, base+"/form", OpenFormRequest{Mode: "edit", ID: "R-101"})
	w = do(t, router, http.MethodDelete, base+"/form/ingredients/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("remove status = %d, body = %s", w.Code, w.Body.String())
	}
	w = do(t, router, http.MethodPatch, base+"/form/ingredients/0", IngredientFieldRequest{Field: "quantity", Value: "55"})
	if w.Code != http.StatusOK {
		t.Fatalf("set status = %d", w.Code)
	}
	w = do(t, router, http.MethodPut, base+"/form/steps/x", StepRequest{Value: "Rest"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad index status = %d, want 400", w.Code)
	}

	var v struct {
		Form struct {
			Draft struct {
				Ingredients []struct {
					Name     string `json:"name"`
					Quantity string `json:"quantity"`
				} `json:"ingredients"`
			} `json:"draft"`
		} `json:"form"`
	}
	if err := json.Unmarshal(decodePage(t, getPage(t, router, base)).View, &v); err != nil {
		t.Fatal(err)
	}
	ings := v.Form.Draft.Ingredients
	if len(ings) != 4 || ings[1].Name != "Yeast" || ings[0].Quantity != "55" {
		t.Errorf("draft ingredients = %+v", ings)
	}
}

// getPage fetches the current page of a session.
func getPage(t *testing.T, h http.Handler, base string) *httptest.ResponseRecorder {
	t.Helper()
	w := do(t, h, http.MethodGet, base, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get %s status = %d", base, w.Code)
	}
	return w
}

func TestOverlayEndpoints(t *testing.T) {
	router := testEnv(t)
	sid := openRoute(t, router, "production-lines")
	base := "/sessions/" + sid

	w := do(t, router, http.MethodPost, base+"/overlay", OverlayRequest{ID: "2"})
	if w.Code != http.StatusOK || !decodePage(t, w).Changed {
		t.Fatalf("show status = %d, body = %s", w.Code, w.Body.String())
	}
	w = do(t, router, http.MethodPost, base+"/overlay/edit", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("edit status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"mode":"edit"`) {
		t.Errorf("edit form not open: %s", w.Body.String())
	}

	w = do(t, router, http.MethodPost, base+"/overlay", OverlayRequest{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty id status = %d, want 400", w.Code)
	}
}

func TestUnsupportedAction(t *testing.T) {
	router := testEnv(t)
	sid := openRoute(t, router, "dashboard")
	w := do(t, router, http.MethodPost, "/sessions/"+sid+"/records/B-2401/start", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestSessionLifecycle(t *testing.T) {
	router := testEnv(t)
	sid := openRoute(t, router, "settings")

	w := do(t, router, http.MethodDelete, "/sessions/"+sid, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("close status = %d", w.Code)
	}
	w = do(t, router, http.MethodGet, "/sessions/"+sid, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get closed status = %d, want 404", w.Code)
	}
}

func TestQuery(t *testing.T) {
	router := testEnv(t)
	sid := openRoute(t, router, "menu-items")

	w := do(t, router, http.MethodPut, "/sessions/"+sid+"/query", QueryRequest{Search: "cookie", Filter: "Bakery"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var v struct {
		Rows []struct {
			Name string `json:"name"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(decodePage(t, w).View, &v); err != nil {
		t.Fatal(err)
	}
	if len(v.Rows) != 1 || v.Rows[0].Name != "Chocolate Chip Cookies" {
		t.Errorf("rows = %+v", v.Rows)
	}
}

func TestChart(t *testing.T) {
	router := testEnv(t)
	sid := openRoute(t, router, "production-lines")

	w := do(t, router, http.MethodGet, "/sessions/"+sid+"/chart.png", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	if _, err := png.Decode(w.Body); err != nil {
		t.Errorf("decode png: %v", err)
	}

	do(t, router, http.MethodPut, "/sessions/"+sid+"/query", QueryRequest{Search: "nothing like this"})
	w = do(t, router, http.MethodGet, "/sessions/"+sid+"/chart.png", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("empty chart status = %d, want 404", w.Code)
	}
}

func TestUnknownPath(t *testing.T) {
	router := testEnv(t)
	w := do(t, router, http.MethodGet, "/nowhere", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	router := NewRouter(testutil.TestService(t), nil, 1, 2)

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/routes", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests && w.Header().Get("Retry-After") == "" {
			t.Error("429 without Retry-After")
		}
	}
	if diff := cmp.Diff([]int{200, 200, 429}, codes); diff != "" {
		t.Errorf("codes (-want +got):\n%s", diff)
	}

	// Another client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/routes", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("second client status = %d", w.Code)
	}
}
