package gameclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

var list = []string{"crane", "trace", "arose", "slate", "plate", "bills", "fills"}

type staticStore struct{}

func (staticStore) Load(context.Context) (map[string]int, error) {
	return words.FromList(list).Weights(), nil
}

func (staticStore) Remove(context.Context, string) error { return nil }

func newRemote(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(httpserver.New(httpserver.Deps{
		Dict:  words.FromList(list),
		Words: staticStore{},
	}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_SubmitFlow(t *testing.T) {
	ctx := context.Background()
	srv := newRemote(t)

	c, err := New(ctx, srv.URL+"/", "crane", srv.Client())
	require.NoError(t, err)
	assert.NotEmpty(t, c.GameID())
	var _ solver.Game = c

	out, err := c.Submit(ctx, "zzzzz", 1)
	require.NoError(t, err)
	assert.False(t, out.Accepted)

	_, err = c.Submit(ctx, "arose", 2)
	assert.ErrorIs(t, err, game.ErrRowMismatch)

	out, err = c.Submit(ctx, "arose", 1)
	require.NoError(t, err)
	assert.True(t, out.Accepted)
	assert.Equal(t, "yg..g", out.Feedback.Pattern())

	out, err = c.Submit(ctx, "crane", 2)
	require.NoError(t, err)
	assert.True(t, out.Feedback.Solved())

	_, err = c.Submit(ctx, "trace", 3)
	assert.ErrorIs(t, err, ErrUnexpectedStatus, "finished games answer 409")
}

func TestClient_SolverAgainstServer(t *testing.T) {
	ctx := context.Background()
	srv := newRemote(t)
	c, err := New(ctx, srv.URL, "plate", nil)
	require.NoError(t, err)

	res, err := solver.NewSession(c, staticStore{}, solver.Options{}).Run(ctx)
	require.NoError(t, err)
	assert.True(t, res.Solved)
	assert.Equal(t, "plate", res.Solution)
}

func TestClient_ServerErrors(t *testing.T) {
	ctx := context.Background()
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer broken.Close()

	_, err := New(ctx, broken.URL, "", nil)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)

	c := &Client{base: broken.URL, http: broken.Client(), gameID: "x", nextRow: 1}
	_, err = c.Submit(ctx, "crane", 1)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestClient_Timeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer slow.Close()

	c := &Client{base: slow.URL, http: slow.Client(), gameID: "x", nextRow: 1}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.Submit(ctx, "crane", 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
