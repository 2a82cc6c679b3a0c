// Package handler provides the HTTP handlers for the framelift backend.
package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/secondary4432-cyber/framelift-ai/internal/config"
	"github.com/secondary4432-cyber/framelift-ai/internal/httputil"
	"github.com/secondary4432-cyber/framelift-ai/internal/logger"
	"github.com/secondary4432-cyber/framelift-ai/internal/media"
	"github.com/secondary4432-cyber/framelift-ai/internal/tiktok"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing; larger
// parts spill to disk before the handler sees them.
const maxUploadMemory = 32 << 20

// Handler holds the three request handlers behind the listener. All state is
// read-only after construction; handlers share nothing across requests.
type Handler struct {
	frontendURL string
	tiktok      *tiktok.Client
	spool       *media.Spool
	uploader    media.Uploader
}

type Params struct {
	fx.In

	Config   *config.Config
	TikTok   *tiktok.Client
	Spool    *media.Spool
	Uploader media.Uploader
}

// New creates a Handler instance
func New(params Params) *Handler {
	return &Handler{
		frontendURL: params.Config.FrontendURL,
		tiktok:      params.TikTok,
		spool:       params.Spool,
		uploader:    params.Uploader,
	}
}

// HandleHealth handles GET /
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "framelift backend is running")
}

// HandleAuthStart handles GET /auth: it forwards the browser to TikTok's
// authorization page, generating a state value when the frontend sent none.
func (h *Handler) HandleAuthStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		state = uuid.NewString()
	}

	http.Redirect(w, r, h.tiktok.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// HandleAuthCallback handles GET /on_auth: it exchanges the authorization
// code and bounces the browser back to the frontend with the raw token
// payload in the query string. The payload lands in browser history and
// access logs; acceptable for a demo, not for production.
func (h *Handler) HandleAuthCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing code parameter", http.StatusBadRequest)
		return
	}

	payload, err := h.tiktok.ExchangeCode(r.Context(), code)
	if err != nil {
		logger.Error("Token exchange failed", zap.Error(err))
		http.Error(w, "Token exchange failed", http.StatusInternalServerError)
		return
	}

	target := fmt.Sprintf("%s?token=%s", h.frontendURL, url.QueryEscape(string(payload)))
	http.Redirect(w, r, target, http.StatusFound)
}

// HandleUpload handles POST /upload. The video is staged to a temp file that
// is discarded on every exit path. Without an access token the request takes
// the demo path; with one the staged file is handed to the uploader, which
// currently acknowledges without forwarding.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	file, header, err := r.FormFile("video")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Error("Failed to close uploaded file", zap.Error(err))
		}
	}()

	spooled, err := h.spool.Save(file, header)
	if err != nil {
		logger.Error("Failed to stage upload", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "Upload failed")
		return
	}
	defer spooled.Discard()

	accessToken := r.FormValue("access_token")
	if accessToken == "" {
		logger.Info("Upload accepted in demo mode",
			zap.String("file", spooled.Name),
			zap.Int64("size", spooled.Size),
		)
		httputil.WriteDemo(w, "Demo mode: video accepted, nothing sent to TikTok")
		return
	}

	ctx := r.Context()
	ticket, err := h.uploader.Init(ctx, accessToken, spooled.Size)
	if err == nil {
		err = h.uploader.Transfer(ctx, ticket, spooled)
	}
	if err == nil {
		err = h.uploader.Publish(ctx, accessToken, ticket)
	}
	if err != nil {
		logger.Error("Upload handoff failed", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	logger.Info("Upload received",
		zap.String("file", spooled.Name),
		zap.Int64("size", spooled.Size),
	)
	httputil.WriteOK(w, "Video received")
}

// Module provides the handler dependencies
var Module = fx.Options(
	fx.Provide(
		New,
	),
)
