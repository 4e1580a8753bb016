package result

import (
	"encoding/json"
	stderrors "errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forecast.app/pkg/errors"
)

func variants[T any](e Envelope[T]) int {
	n := 0
	if e.IsLoading() {
		n++
	}
	if e.IsSuccess() {
		n++
	}
	if e.IsFailure() {
		n++
	}
	return n
}

func TestEnvelope_ExactlyOneVariant(t *testing.T) {
	tests := []struct {
		name  string
		env   Envelope[int]
		state State
	}{
		{"zero value", Envelope[int]{}, StateLoading},
		{"loading", Loading[int](), StateLoading},
		{"success", Success(42), StateSuccess},
		{"failure", Failure[int](errors.NewNetworkError("offline", nil)), StateFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 1, variants(tt.env))
			assert.Equal(t, tt.state, tt.env.State())
		})
	}
}

func TestEnvelope_Accessors(t *testing.T) {
	ok := Success("clear sky")
	v, present := ok.Value()
	assert.True(t, present)
	assert.Equal(t, "clear sky", v)
	assert.Nil(t, ok.Err())
	assert.Equal(t, errors.ErrorTypeUnknown, ok.Kind())

	failed := Failure[string](errors.NewRemoteRejectedError("status 401", nil))
	v, present = failed.Value()
	assert.False(t, present)
	assert.Empty(t, v)
	require.NotNil(t, failed.Err())
	assert.Equal(t, errors.RemoteRejectedError, failed.Kind())
}

func TestFailure_ClassifiesForeignErrors(t *testing.T) {
	env := Failure[int](stderrors.New("boom"))
	assert.Equal(t, errors.ErrorTypeUnknown, env.Kind())
	assert.Equal(t, "boom", env.Err().Message)

	wrapped := Failure[int](errors.Wrap(errors.ParseError, "outer", errors.NewNetworkError("inner", nil)))
	assert.Equal(t, errors.ParseError, wrapped.Kind())
}

func TestMatch_CallsOneHandler(t *testing.T) {
	describe := func(e Envelope[float64]) string {
		return Match(e,
			func() string { return "loading" },
			func(v float64) string { return "ok" },
			func(err *errors.AppError) string { return err.Type.String() },
		)
	}

	assert.Equal(t, "loading", describe(Loading[float64]()))
	assert.Equal(t, "ok", describe(Success(15.2)))
	assert.Equal(t, "INVALID_LOCATION", describe(Failure[float64](errors.NewInvalidLocationError("sentinel"))))
}

func TestMap(t *testing.T) {
	double := func(v int) int { return v * 2 }

	v, ok := Map(Success(21), double).Value()
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	assert.True(t, Map(Loading[int](), double).IsLoading())
	assert.Equal(t, errors.NetworkError, Map(Failure[int](errors.NewNetworkError("x", nil)), double).Kind())
}

func TestEnvelope_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		env      Envelope[int]
		expected string
	}{
		{"loading", Loading[int](), `{"status":"loading"}`},
		{"success", Success(7), `{"status":"success","data":7}`},
		{"failure", Failure[int](errors.NewUnknownPlaceError("no match for Atlantis")),
			`{"status":"failure","error":{"kind":"UNKNOWN_PLACE","message":"no match for Atlantis"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.env)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestCell_SettleOnlyFromLoading(t *testing.T) {
	cell := NewCell[int]()
	tok := cell.Begin()

	assert.False(t, cell.Settle(tok, Loading[int]()))
	assert.True(t, cell.Settle(tok, Success(1)))
	assert.False(t, cell.Settle(tok, Failure[int](errors.NewNetworkError("late", nil))))

	v, ok := cell.Get().Value()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestCell_StaleTokenIgnored(t *testing.T) {
	cell := NewCell[int]()
	stale := cell.Begin()
	fresh := cell.Begin()

	assert.False(t, cell.Settle(stale, Success(1)))
	assert.True(t, cell.Get().IsLoading())

	assert.True(t, cell.Settle(fresh, Success(2)))
	v, _ := cell.Get().Value()
	assert.Equal(t, 2, v)
}

func TestCell_ConcurrentSettleSingleWinner(t *testing.T) {
	cell := NewCell[int]()
	tok := cell.Begin()

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			if cell.Settle(tok, Success(v)) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.True(t, cell.Get().IsSuccess())
}
