//go:build e2e
// +build e2e

package e2e_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/chordmap/cmd"
	"github.com/jsphweid/chordmap/config"
	"github.com/jsphweid/chordmap/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var router http.Handler

func TestMain(m *testing.M) {
	router = cmd.NewRouter(config.Default())

	exitVal := m.Run()

	os.Exit(exitVal)
}

func get(target string) *http.Response {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Result()
}

func decodeRules(t *testing.T, resp *http.Response) model.RulesResponse {
	t.Helper()
	var res model.RulesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return res
}

func TestAllRulesE2E(t *testing.T) {
	resp := get("/rules")
	assert.Equal(t, 200, resp.StatusCode)

	res := decodeRules(t, resp)
	assert := assert.New(t)
	assert.Equal(24, res.NoteRoot)
	assert.Equal(48, res.Count)
	assert.Equal(model.RuleResponse{
		Trigger: "C1",
		Degree:  "I",
		Notes:   []int{24, 28, 31},
		Names:   []string{"C2", "E2", "G2"},
	}, res.Rules[0])
}

func TestRequestsDoNotShareStateE2E(t *testing.T) {
	first := decodeRules(t, get("/rules"))
	second := decodeRules(t, get("/rules"))
	assert.Equal(t, first, second)
}

func TestOctaveE2E(t *testing.T) {
	res := decodeRules(t, get("/rules/2"))

	assert := assert.New(t)
	assert.Equal(12, res.Count)
	assert.Equal("C2", res.Rules[0].Trigger)
	assert.Equal([]string{"E2", "G2", "C3"}, res.Rules[0].Names)
}

func TestOctaveErrorsE2E(t *testing.T) {
	assert.Equal(t, 404, get("/rules/9").StatusCode)
	assert.Equal(t, 400, get("/rules/high").StatusCode)
}

func TestTableE2E(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("..", "table", "testdata", "default.golden"))
	require.NoError(t, err)

	resp := get("/table")
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, string(want), string(body))
}
