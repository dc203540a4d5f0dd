package server

import (
	"embed"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/encoding"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/ipo_radar/app/sentiment/internal/biz"
	"github.com/iWorld-y/ipo_radar/app/sentiment/internal/conf"
	"github.com/iWorld-y/ipo_radar/app/sentiment/internal/service"
)

//go:embed assets/*
var assets embed.FS

type errorReply struct {
	Error string `json:"error"`
}

// ErrorEncoder writes errors as {"error": message}. Errors without a reason
// hide their detail behind the generic processing message.
func ErrorEncoder(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	se := errors.FromError(err)
	msg := se.Message
	if se.Reason == errors.UnknownReason || se.Reason == "UNKNOWN" {
		se = biz.ErrInternal
		msg = se.Message
	}

	codec := encoding.GetCodec("json")
	body, err := codec.Marshal(&errorReply{Error: msg})
	if err != nil {
		w.WriteHeader(nethttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(int(se.Code))
	_, _ = w.Write(body)
}

// NewHTTPServer creates the HTTP server with the API routes and the web page.
func NewHTTPServer(c *conf.Server, s *service.SentimentService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
		http.ErrorEncoder(ErrorEncoder),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)
	s.RegisterHTTPServer(srv)

	srv.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/" {
			nethttp.NotFound(w, r)
			return
		}
		serveAsset(w, "assets/index.html", "text/html; charset=utf-8")
	})
	srv.HandleFunc("/app.js", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		serveAsset(w, "assets/app.js", "application/javascript; charset=utf-8")
	})

	return srv
}

func serveAsset(w nethttp.ResponseWriter, name, contentType string) {
	content, err := assets.ReadFile(name)
	if err != nil {
		nethttp.Error(w, "not found", nethttp.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(content)
}
