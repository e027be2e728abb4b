package frontend

import (
	"context"
	"path"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"wow_check/analysis"
	"wow_check/chart"
	"wow_check/wow"
)

const maxReports = 24

var (
	queueLock sync.Mutex
	queue     = make([]*queueData, 0, 16)
	queueWake = make(chan struct{}, 1)
)

var (
	eventReady = []byte(`{"event":"ready"}`)
	eventStart = []byte(`{"event":"start"}`)
	eventError = []byte(`{"event":"error"}`)
)

// requestData is the socket's first JSON message: which encounter to
// analyze and the report sessions, oldest first.
type requestData struct {
	Encounter string            `json:"encounter"`
	Reports   []analysis.Report `json:"reports"`
}

func checkRequestValidation(req *requestData) bool {
	if _, ok := wow.FindEncounter(req.Encounter); !ok {
		return false
	}
	if len(req.Reports) == 0 || len(req.Reports) > maxReports {
		return false
	}

	for _, r := range req.Reports {
		if len(r.Code) < 8 || len(r.Code) > 32 {
			return false
		}
		if len(r.Label) > 64 {
			return false
		}
	}

	return true
}

type queueData struct {
	lock sync.Mutex

	id   uuid.UUID
	conn *websocket.Conn

	req     requestData
	context context.Context

	done chan struct{}

	skip bool
}

func queueWorker() {
	var q *queueData

	for {
		q = nil

		queueLock.Lock()
		if len(queue) > 0 {
			q = queue[0]

			if len(queue) > 1 {
				for i := 1; i < len(queue); i++ {
					go queue[i].Reorder(i - 1)
					queue[i-1] = queue[i]
				}
			}
			queue = queue[:len(queue)-1]
		}
		queueLock.Unlock()
		if q == nil {
			<-queueWake
			continue
		}

		q.lock.Lock()
		skip := q.skip
		q.lock.Unlock()
		if skip {
			continue
		}

		log.Info().
			Str("request", q.id.String()).
			Str("encounter", q.req.Encounter).
			Int("reports", len(q.req.Reports)).
			Msg("analysis start")
		q.Start()

		url, err := q.run()
		if err != nil {
			log.Warn().Err(err).Str("request", q.id.String()).Msg("analysis failed")
			q.Error()
		} else {
			log.Info().Str("request", q.id.String()).Str("url", url).Msg("analysis done")
			q.Succ(url)
		}

		q.done <- struct{}{}
	}
}

func (q *queueData) run() (string, error) {
	enc, ok := wow.FindEncounter(q.req.Encounter)
	if !ok {
		return "", errors.Errorf("unknown encounter %q", q.req.Encounter)
	}

	store, err := analysis.Run(&analysis.Options{
		Context:   q.context,
		Gateway:   routeOpt.Gateway,
		Encounter: enc,
		Reports:   q.req.Reports,
		Progress:  q.Progress,
	})
	if err != nil {
		return "", err
	}

	_, err = chart.Render(chart.Options{
		Store:     store,
		Encounter: enc,
		OutDir:    filepath.Join(routeOpt.OutDir, q.id.String()),
	})
	if err != nil {
		return "", err
	}

	return path.Join("/charts", q.id.String(), "index.html"), nil
}

////////////////////////////////////////////////////////////////////////////////////////////////////

func (q *queueData) Ready() {
	q.lock.Lock()
	defer q.lock.Unlock()

	if err := q.conn.WriteMessage(websocket.TextMessage, eventReady); err != nil {
		log.Warn().Err(err).Msg("websocket write failed")
	}
}

func (q *queueData) Reorder(order int) {
	q.lock.Lock()
	defer q.lock.Unlock()

	resp := struct {
		Event string `json:"event"`
		Data  int    `json:"data"`
	}{
		Event: "waiting",
		Data:  order,
	}

	if err := q.conn.WriteJSON(&resp); err != nil {
		log.Warn().Err(err).Msg("websocket write failed")
	}
}

func (q *queueData) Start() {
	q.lock.Lock()
	defer q.lock.Unlock()

	if err := q.conn.WriteMessage(websocket.TextMessage, eventStart); err != nil {
		log.Warn().Err(err).Msg("websocket write failed")
	}
}

func (q *queueData) Progress(s string) {
	q.lock.Lock()
	defer q.lock.Unlock()

	resp := struct {
		Event string `json:"event"`
		Data  string `json:"data"`
	}{
		Event: "progress",
		Data:  s,
	}

	if err := q.conn.WriteJSON(&resp); err != nil {
		log.Warn().Err(err).Msg("websocket write failed")
	}
}

func (q *queueData) Error() {
	q.lock.Lock()
	defer q.lock.Unlock()

	if err := q.conn.WriteMessage(websocket.TextMessage, eventError); err != nil {
		log.Warn().Err(err).Msg("websocket write failed")
	}
}

// Succ sends the rendered chart index URL.
func (q *queueData) Succ(url string) {
	q.lock.Lock()
	defer q.lock.Unlock()

	resp := struct {
		Event string `json:"event"`
		Data  string `json:"data"`
	}{
		Event: "complete",
		Data:  url,
	}

	if err := q.conn.WriteJSON(&resp); err != nil {
		log.Warn().Err(err).Msg("websocket write failed")
	}
}
