package api

import (
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/samcharles93/aepdown/internal/batch"
	"github.com/samcharles93/aepdown/internal/logger"
	"github.com/samcharles93/aepdown/pkg/aep"
)

const (
	DefaultMaxUploadBytes int64 = 512 << 20

	HeaderSourceVersion = "X-Source-Version"
	HeaderTargetVersion = "X-Target-Version"
)

type Config struct {
	MaxUploadBytes int64
	Logger         logger.Logger
}

type Server struct {
	maxUpload int64
	log       logger.Logger
	clock     func() time.Time
}

func NewServer(cfg Config) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	return &Server{
		maxUpload: cfg.MaxUploadBytes,
		log:       cfg.Logger,
		clock:     time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.Use(requestID)

	e.GET("/healthz", s.handleHealth)
	e.GET("/v1/versions", s.handleVersions)
	e.POST("/v1/detect", s.handleDetect)
	e.POST("/v1/convert", s.handleConvert)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersions(c *echo.Context) error {
	list := VersionList{Object: "list"}
	for _, v := range aep.AllVersions() {
		sig, err := aep.SignatureFor(v)
		if err != nil {
			return writeFailure(c, err)
		}
		list.Data = append(list.Data, VersionInfo{
			Version:   v.String(),
			Label:     v.Label(),
			Signature: sig.Hex(),
			Targets:   versionNames(aep.TargetsFor(v)),
		})
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleDetect(c *echo.Context) error {
	data, err := readBody(c.Request().Body, s.maxUpload)
	if err != nil {
		return writeFailure(c, err)
	}
	det, err := aep.Detect(data)
	if err != nil {
		s.log.Debug("detect failed", "kind", aep.ErrorKind(err), "error", err)
		return writeFailure(c, err)
	}
	return c.JSON(http.StatusOK, DetectResponse{
		Version:    det.Version.String(),
		Label:      det.Version.Label(),
		Signature:  det.Signature.Hex(),
		HeadOffset: det.HeadOffset,
		Targets:    versionNames(aep.TargetsFor(det.Version)),
	})
}

func (s *Server) handleConvert(c *echo.Context) error {
	raw := c.QueryParam("target")
	if raw == "" {
		return writeBadRequest(c, "target query parameter is required")
	}
	target, err := aep.ParseVersion(raw)
	if err != nil {
		return writeFailure(c, err)
	}

	data, err := readBody(c.Request().Body, s.maxUpload)
	if err != nil {
		return writeFailure(c, err)
	}

	start := s.clock()
	source, err := aep.DetectVersion(data)
	if err == nil {
		data, err = aep.Convert(data, target)
	}
	if err != nil {
		s.log.Debug("convert failed", "target", target, "kind", aep.ErrorKind(err), "error", err)
		return writeFailure(c, err)
	}
	s.log.Info("converted upload",
		"source", source,
		"target", target,
		"bytes", len(data),
		"elapsed", s.clock().Sub(start),
	)

	res := c.Response()
	h := res.Header()
	h.Set(echo.HeaderContentType, echo.MIMEOctetStream)
	h.Set(echo.HeaderContentLength, strconv.Itoa(len(data)))
	h.Set(HeaderSourceVersion, source.String())
	h.Set(HeaderTargetVersion, target.String())
	if name := c.QueryParam("filename"); name != "" {
		out := filepath.Base(batch.OutputPath(filepath.Base(name), target, ""))
		h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": out}))
	}
	res.WriteHeader(http.StatusOK)
	if _, err := res.Write(data); err != nil {
		return fmt.Errorf("write converted body: %w", err)
	}
	return nil
}
