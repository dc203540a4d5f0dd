package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/ipo_radar/app/sentiment/internal/biz"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/model"
)

const (
	OperationSentiment    = "/ipo_radar.sentiment.v1.Sentiment/Analyze"
	OperationSentimentPDF = "/ipo_radar.sentiment.v1.Sentiment/AnalyzePDF"
	OperationHistory      = "/ipo_radar.sentiment.v1.Sentiment/History"
)

// HistoryReply is the body of GET /api/sentiment/history.
type HistoryReply struct {
	Runs []*model.HistoryEntry `json:"runs"`
}

type pdfReply struct {
	name string
	pdf  []byte
}

type historyReq struct {
	name  string
	limit int
}

// SentimentService exposes the analysis use case over HTTP.
type SentimentService struct {
	uc  *biz.AnalysisUseCase
	log *log.Helper
}

// NewSentimentService creates a SentimentService.
func NewSentimentService(uc *biz.AnalysisUseCase, logger log.Logger) *SentimentService {
	return &SentimentService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// RegisterHTTPServer mounts the JSON and PDF endpoints.
func (s *SentimentService) RegisterHTTPServer(srv *http.Server) {
	r := srv.Route("/")
	r.GET("/api/sentiment", s.analyzeHandler)
	r.GET("/api/sentiment/pdf", s.pdfHandler)
	r.GET("/api/sentiment/history", s.historyHandler)
}

func (s *SentimentService) analyzeHandler(ctx http.Context) error {
	name := ctx.Query().Get("ipo_name")
	http.SetOperation(ctx, OperationSentiment)
	h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.uc.Analyze(ctx, req.(string))
	})
	out, err := h(ctx, name)
	if err != nil {
		return err
	}
	return ctx.Result(200, out.(*model.AnalysisResult))
}

func (s *SentimentService) pdfHandler(ctx http.Context) error {
	name := ctx.Query().Get("ipo_name")
	http.SetOperation(ctx, OperationSentimentPDF)
	h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
		res, pdf, err := s.uc.Report(ctx, req.(string))
		if err != nil {
			return nil, err
		}
		return &pdfReply{name: res.CompanyName, pdf: pdf}, nil
	})
	out, err := h(ctx, name)
	if err != nil {
		return err
	}
	reply := out.(*pdfReply)
	ctx.Response().Header().Set("Content-Disposition", ContentDisposition(reply.name))
	return ctx.Blob(200, "application/pdf", reply.pdf)
}

func (s *SentimentService) historyHandler(ctx http.Context) error {
	q := ctx.Query()
	in := historyReq{name: q.Get("ipo_name")}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return biz.ErrBadLimit
		}
		in.limit = n
	}
	http.SetOperation(ctx, OperationHistory)
	h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
		r := req.(historyReq)
		runs, err := s.uc.History(ctx, r.name, r.limit)
		if err != nil {
			return nil, err
		}
		return &HistoryReply{Runs: runs}, nil
	})
	out, err := h(ctx, in)
	if err != nil {
		return err
	}
	return ctx.Result(200, out.(*HistoryReply))
}

// ContentDisposition names the downloaded report after the company.
func ContentDisposition(name string) string {
	name = strings.NewReplacer(`"`, "", "\r", "", "\n", "").Replace(name)
	return fmt.Sprintf(`attachment; filename="%s_sentiment_report.pdf"`, name)
}
