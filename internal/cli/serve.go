package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ppiankov/claimcheck/internal/llm"
	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/pipeline"
	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the verification pipeline over HTTP",
	Long: `Serve exposes the verification pipeline as a JSON API:

  POST /api/verify   {"claim": "..."}  → report
  GET  /api/health                     → LLM provider availability

Example:
  claimcheck serve --addr :8090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: server.addr)")
	addPipelineFlags(serveCmd)
}

// reportVerifier produces a report for one claim
type reportVerifier interface {
	VerifyReport(ctx context.Context, claim string) (*model.Report, error)
}

// availabilityChecker reports whether the LLM backend answers
type availabilityChecker interface {
	Name() string
	IsAvailable(ctx context.Context) bool
}

type verifyRequest struct {
	Claim string `json:"claim"`
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		return fmt.Errorf("llm: %w", err)
	}

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newRouter(p, provider, cfg.Server.RequestTimeout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.Server.Addr, "provider", provider.Name())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	slog.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// newRouter builds the HTTP API around verifier
func newRouter(verifier reportVerifier, provider availabilityChecker, requestTimeout time.Duration) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.POST("/verify", verifyHandler(verifier, requestTimeout))
	api.GET("/health", healthHandler(provider))

	return r
}

func verifyHandler(verifier reportVerifier, requestTimeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req verifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		ctx := c.Request.Context()
		if requestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, requestTimeout)
			defer cancel()
		}

		report, err := verifier.VerifyReport(ctx, req.Claim)
		if err != nil {
			status := statusFor(err)
			if status >= http.StatusInternalServerError {
				slog.Warn("verification failed", "claim", req.Claim, "status", status, "err", err)
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, report)
	}
}

func healthHandler(provider availabilityChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		available := provider.IsAvailable(ctx)
		status := http.StatusOK
		if !available {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"provider":  provider.Name(),
			"available": available,
		})
	}
}

// statusFor maps pipeline errors to HTTP status codes
func statusFor(err error) int {
	var retrievalErr *model.RetrievalError
	var synthesisErr *model.SynthesisError

	switch {
	case errors.Is(err, pipeline.ErrEmptyClaim):
		return http.StatusBadRequest
	case errors.As(err, &retrievalErr), errors.As(err, &synthesisErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
