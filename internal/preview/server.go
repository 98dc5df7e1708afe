package preview

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/domonda/go-datatable/nfttxns"
	"github.com/domonda/go-datatable/paging"
)

// ExpandParam is the query parameter listing the expanded row indexes.
const ExpandParam = "expand"

// ShutdownTimeout is the time given to open requests
// when the server is shut down.
const ShutdownTimeout = 5 * time.Second

// Server serves the pages of a Source.
type Server struct {
	renderer *Renderer
	source   *Source
	account  string
	logger   *logrus.Logger
	engine   *gin.Engine
}

// NewServer returns a Server rendering source with renderer.
// The root path redirects to the transactions of account.
func NewServer(renderer *Renderer, source *Source, account string, logger *logrus.Logger) *Server {
	s := &Server{
		renderer: renderer,
		source:   source,
		account:  account,
		logger:   logger,
	}
	s.engine = s.setupRouter()
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) setupRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.loggerMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "transactions": s.source.Len()})
	})
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/account/"+url.PathEscape(s.account)+"/nft-txns")
	})
	r.GET("/account/:id/nft-txns", s.handlePage)
	r.GET("/account/:id/nft-txns/cursor", s.handleCursorPage)
	r.GET("/account/:id/nft-txns.csv", s.handleExport)
	return r
}

func (s *Server) query(c *gin.Context) (nfttxns.Query, bool) {
	q, err := nfttxns.ParseQuery(c.Param("id"), c.Request.URL.Query())
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return q, false
	}
	q.PerPage = s.renderer.perPage()
	return q, true
}

func (s *Server) handlePage(c *gin.Context) {
	q, ok := s.query(c)
	if !ok {
		return
	}
	expanded, err := parseExpanded(c.Query(ExpandParam))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if err = s.selectPage(&q); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	err = s.renderer.WritePage(c.Request.Context(), c.Writer, s.source, q, expanded)
	if err != nil {
		s.renderError(c, err)
	}
}

// selectPage dispatches the requested page of q through
// an offset pagination over the matching transactions.
// The first page of an empty listing is kept to render its error row.
func (s *Server) selectPage(q *nfttxns.Query) error {
	count := s.source.Count(*q)
	if count == 0 && q.Page == 1 {
		return nil
	}
	offset := paging.Offset{
		Count:   count,
		Limit:   q.PerPage,
		SetPage: func(page int) { q.Page = page },
	}
	return offset.Select(q.Page)
}

func (s *Server) handleCursorPage(c *gin.Context) {
	q, ok := s.query(c)
	if !ok {
		return
	}
	cursor := c.Query(paging.CursorParam)
	if _, err := decodeCursor(cursor); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	err := s.renderer.WriteCursorPage(c.Request.Context(), c.Writer, s.source, q, cursor, c.Request.URL.Path+q.Link())
	if err != nil {
		s.renderError(c, err)
	}
}

func (s *Server) handleExport(c *gin.Context) {
	q, ok := s.query(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="nft-txns.csv"`)
	err := s.renderer.WriteCSV(c.Request.Context(), c.Writer, s.source, q)
	if err != nil {
		s.renderError(c, err)
	}
}

func (s *Server) renderError(c *gin.Context, err error) {
	s.logger.WithError(err).WithField("path", c.Request.URL.Path).Error("rendering failed")
	if errors.Is(err, ErrInvalidCursor) {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if !c.Writer.Written() {
		c.String(http.StatusInternalServerError, err.Error())
	}
}

// loggerMiddleware logs every request.
func (s *Server) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"query":    c.Request.URL.RawQuery,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("HTTP request")
	}
}

// Serve serves HTTP requests on listener until ctx is done.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		errs <- srv.Serve(listener)
	}()
	s.logger.WithField("addr", listener.Addr().String()).Info("Preview server started")

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	if serveErr := <-errs; !errors.Is(serveErr, http.ErrServerClosed) && err == nil {
		err = serveErr
	}
	s.logger.Info("Preview server stopped")
	return err
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

func parseExpanded(param string) ([]int, error) {
	if param == "" {
		return nil, nil
	}
	var expanded []int
	for _, s := range strings.Split(param, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || i < 0 {
			return nil, errors.New("invalid expand index " + strconv.Quote(s))
		}
		expanded = append(expanded, i)
	}
	return expanded, nil
}
