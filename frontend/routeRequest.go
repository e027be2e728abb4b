package frontend

import (
	"context"
	"strings"
	"time"

	"github.com/dpapathanasiou/go-recaptcha"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func routeRequest(c *gin.Context) {
	ctx, ctxCancel := context.WithCancel(c.Request.Context())
	defer ctxCancel()

	ws, err := websocketUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer ws.Close()

	////////////////////////////////////////////////////////////////////////////////////////////////////
	// the first frame is the captcha token when the gate is on

	if routeOpt.RecaptchaSecret != "" {
		ws.SetReadDeadline(time.Now().Add(10 * time.Second))
		_, msg, err := ws.ReadMessage()
		if err != nil {
			return
		}

		ok, err := recaptcha.Confirm(clientAddr(c), string(msg))
		if err != nil || !ok {
			return
		}
	}
	ws.SetReadDeadline(time.Time{})

	////////////////////////////////////////////////////////////////////////////////////////////////////

	q := queueData{
		id:      uuid.New(),
		conn:    ws,
		context: ctx,
		done:    make(chan struct{}, 1),
	}
	q.Ready()

	if err := ws.ReadJSON(&q.req); err != nil {
		return
	}
	if !checkRequestValidation(&q.req) {
		q.Error()
		return
	}

	// drain further client frames so control messages keep flowing
	go func() {
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// keepalive; a dead peer cancels the request
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				q.lock.Lock()
				err := ws.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(time.Second))
				q.lock.Unlock()
				if err != nil {
					ctxCancel()
					return
				}

			case <-ctx.Done():
				return
			}
		}
	}()

	queueLock.Lock()
	q.Reorder(len(queue))
	if len(queue) == 0 {
		select {
		case queueWake <- struct{}{}:
		default:
		}
	}
	queue = append(queue, &q)
	queueLock.Unlock()

	select {
	case <-q.done:
		q.lock.Lock()
		err = ws.WriteMessage(websocket.CloseMessage, websockEmptyClosure)
		q.lock.Unlock()
		if err == nil {
			select {
			case <-time.After(10 * time.Second):
			case <-ctx.Done():
			}
		}

	case <-ctx.Done():
		q.lock.Lock()
		q.skip = true
		q.lock.Unlock()
	}
}

func clientAddr(c *gin.Context) string {
	if v := c.GetHeader("X-Forwarded-For"); v != "" {
		return v
	}
	if v := c.GetHeader("X-Real-Ip"); v != "" {
		return v
	}

	addr := c.Request.RemoteAddr
	if idx := strings.IndexByte(addr, ':'); idx >= 0 {
		addr = addr[:idx]
	}
	return addr
}
