package transport

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/muhammadheryan/eyewear-store/repository/kv"
	utilsContext "github.com/muhammadheryan/eyewear-store/utils/context"
	"github.com/muhammadheryan/eyewear-store/utils/errors"
	"github.com/muhammadheryan/eyewear-store/utils/logger"
	"go.uber.org/zap"
)

const eventsKeepAlive = 25 * time.Second

// StreamEvents handler
// @Summary Storage change notifications
// @Description Server-sent events, one "change" event per write to the caller's cart, wishlist or try-on state
// @Tags Events
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {object} kv.Change
// @Router /events [get]
func (s *RestHandler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	changes := make(chan kv.Change, 16)
	suffix := ":" + userID
	unsubscribe, err := s.Store.Subscribe(ctx, func(change kv.Change) {
		if !strings.HasSuffix(change.Key, suffix) {
			return
		}
		select {
		case changes <- change:
		default:
			logger.Warn("[StreamEvents] slow client, change dropped", zap.String("user_id", userID), zap.String("key", change.Key))
		}
	})
	if err != nil {
		logger.Error("[StreamEvents] err Store.Subscribe", zap.String("error", err.Error()))
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}
	defer unsubscribe()

	// the stream outlives the server write timeout
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !stderrors.Is(err, http.ErrNotSupported) {
		logger.Warn("[StreamEvents] err SetWriteDeadline", zap.String("error", err.Error()))
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	keepAlive := time.NewTicker(eventsKeepAlive)
	defer keepAlive.Stop()

	for {
		var err error
		select {
		case <-ctx.Done():
			return
		case <-keepAlive.C:
			_, err = fmt.Fprint(w, ": keep-alive\n\n")
		case change := <-changes:
			payload, _ := json.Marshal(change)
			_, err = fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
		}
		if err == nil {
			err = rc.Flush()
		}
		if err != nil {
			logger.Info("[StreamEvents] client gone", zap.String("user_id", userID), zap.String("error", err.Error()))
			return
		}
	}
}
