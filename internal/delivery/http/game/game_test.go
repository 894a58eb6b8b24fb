package http_game

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mustachio/server/internal/store"
	usecase_minigame "github.com/mustachio/server/internal/usecase/minigame"
	usecase_turn "github.com/mustachio/server/internal/usecase/turn"
)

func TestWriteErrorStatuses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := New(nil, nil)

	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"missing room", usecase_minigame.ErrNotFound, http.StatusNotFound},
		{"wrong turn", usecase_turn.ErrNotYourTurn, http.StatusConflict},
		{"bad event", usecase_minigame.ErrInvalidEvent, http.StatusBadRequest},
		{"store down", fmt.Errorf("%w : %w", usecase_minigame.ErrInternal, store.ErrUnavailable), http.StatusServiceUnavailable},
		{"anything else", usecase_turn.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			c.writeError(ctx, tc.err)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
