package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/liquid-staking-core/internal/observability/tracing"
	"github.com/babylonlabs-io/liquid-staking-core/internal/protocol"
)

const requestIDHeader = "X-Request-Id"

type Handler struct {
	protocol *protocol.Protocol
}

func NewHandler(p *protocol.Protocol) *Handler {
	return &Handler{protocol: p}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(traceRequest)

	r.Get("/healthcheck", h.healthcheck)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/ledger", h.getLedger)
		r.Get("/burn-queue", h.getBurnQueue)

		r.Post("/mint", h.mint)
		r.Post("/burn", h.burn)
		r.Post("/delegate", h.delegate)
		r.Post("/dust/sweep", h.sweepDust)
		r.Post("/blocks/{round}/report", h.reportBlock)

		r.Route("/validators", func(r chi.Router) {
			r.Get("/", h.listValidators)
			r.Post("/", h.registerValidator)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getValidator)
				r.Post("/commit", h.commit)
				r.Post("/uncommit", h.uncommit)
				r.Post("/bid", h.bid)
				r.Post("/snitch", h.snitch)
				r.Post("/online", h.goOnline)
				r.Post("/offline", h.goOffline)
				r.Post("/close", h.closeValidator)
				r.Post("/delinquency", h.reportDelinquency)
				r.Post("/delinquency/solve", h.solveDelinquency)
			})
		})
	})

	return r
}

// traceRequest gives every request a trace id, reusing the caller's request
// id when present
func traceRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if id := r.Header.Get(requestIDHeader); id != "" {
			ctx = tracing.WithTraceID(ctx, id)
		} else {
			ctx = tracing.InjectTraceID(ctx)
		}
		w.Header().Set(requestIDHeader, tracing.TraceIDFromContext(ctx))
		log.Ctx(ctx).Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("request")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) healthcheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
