package http_room

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mustachio/server/internal/store"
	usecase_room "github.com/mustachio/server/internal/usecase/room"
)

func TestWriteErrorStatuses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := New(nil, "http://localhost:8080")

	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"empty name", usecase_room.ErrEmptyName, http.StatusBadRequest},
		{"missing room", usecase_room.ErrNotFound, http.StatusNotFound},
		{"full room", usecase_room.ErrRoomFull, http.StatusConflict},
		{"store down", fmt.Errorf("%w : %w", usecase_room.ErrInternal, store.ErrUnavailable), http.StatusServiceUnavailable},
		{"anything else", usecase_room.ErrInternal, http.StatusInternalServerError},
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
