package relay

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cp-helper/judge/internal/logger"
	"github.com/cp-helper/judge/pkg/constants"
	"github.com/cp-helper/judge/pkg/messages"
	"github.com/cp-helper/judge/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server exchanges problems and solutions with the browser extension.
// Problems flow in from the extension and are taken by the CLI; solutions
// flow the other way.
type Server struct {
	problems  Mailbox[messages.ProblemMessage]
	solutions Mailbox[messages.SolutionMessage]
	onProblem func(messages.ProblemMessage)
	router    *gin.Engine
	logger    *zap.SugaredLogger
}

// NewServer builds the relay. onProblem, when set, is called for every
// problem received, after it is stored.
func NewServer(onProblem func(messages.ProblemMessage)) *Server {
	s := &Server{
		onProblem: onProblem,
		router:    gin.New(),
		logger:    logger.NewNamedLogger("relay"),
	}
	s.router.Use(gin.Recovery(), corsMiddleware())
	s.router.POST("/", s.postProblem)
	s.router.POST(constants.RelayProblemPath, s.postProblem)
	s.router.GET(constants.RelayProblemPath, s.getProblem)
	s.router.POST(constants.RelaySubmitPath, s.postSubmit)
	s.router.GET(constants.RelayGetSubmitPath, s.getSubmit)
	s.router.GET(constants.RelayStatusPath, s.getStatus)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Relay listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		s.logger.Info("Relay stopped")
		return nil
	}
}

func (s *Server) postProblem(c *gin.Context) {
	var problem messages.ProblemMessage
	if err := c.ShouldBindJSON(&problem); err != nil {
		s.logger.Warnf("Rejected problem: %s", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.problems.Put(problem)
	s.logger.Infof("Received problem %q with %d tests", problem.Name, len(problem.Tests))
	if s.onProblem != nil {
		s.onProblem(problem)
	}
	c.Status(http.StatusOK)
}

func (s *Server) getProblem(c *gin.Context) {
	problem, ok := s.problems.Take()
	if !ok {
		c.JSON(http.StatusOK, messages.EmptyMessage{Empty: true})
		return
	}
	c.JSON(http.StatusOK, problem)
}

func (s *Server) postSubmit(c *gin.Context) {
	var solution messages.SolutionMessage
	if err := c.ShouldBindJSON(&solution); err != nil {
		s.logger.Warnf("Rejected solution: %s", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateFilename(solution.FileName); err != nil {
		s.logger.Warnf("Rejected solution: %s", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	solution.Empty = false
	s.solutions.Put(solution)
	s.logger.Infof("Queued solution for %s", solution.ProblemName)
	c.Status(http.StatusOK)
}

func (s *Server) getSubmit(c *gin.Context) {
	solution, ok := s.solutions.Take()
	if !ok {
		c.JSON(http.StatusOK, messages.EmptyMessage{Empty: true})
		return
	}
	s.logger.Infof("Handing out solution for %s", solution.ProblemName)
	c.JSON(http.StatusOK, solution)
}

func (s *Server) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"problem_pending":  s.problems.Pending(),
		"solution_pending": s.solutions.Pending(),
	})
}

// corsMiddleware lets extension pages on any origin reach the relay.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
