package http

import (
	"context"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"cv-builder/internal/logger"
	"cv-builder/internal/model"
	"cv-builder/internal/store"
)

// Exporter renders a validated record to PDF bytes.
type Exporter interface {
	Export(ctx context.Context, rec *model.CVRecord) ([]byte, error)
}

type Handler struct {
	store     *store.FileStore
	validator *model.Validator
	exporter  Exporter
	webDir    string
}

func NewHandler(s *store.FileStore, v *model.Validator, e Exporter, webDir string) *Handler {
	return &Handler{store: s, validator: v, exporter: e, webDir: webDir}
}

// Register mounts all routes on app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/", h.Index)
	app.Get("/data", h.GetData)
	app.Post("/save", h.Save)
	app.Post("/validate", h.Validate)
	app.Post("/generate", h.Generate)
}

type yamlReq struct {
	YAML string `json:"yaml"`
}

// Index serves the browser editor page.
func (h *Handler) Index(c *fiber.Ctx) error {
	return c.SendFile(filepath.Join(h.webDir, "index.html"))
}

// GetData returns the current document text.
func (h *Handler) GetData(c *fiber.Ctx) error {
	text, err := h.store.LoadText()
	if err != nil {
		logger.Error().Err(err).Msg("load cv data")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"yaml": text})
}

// Save validates the submitted document and overwrites the stored file.
// Nothing is persisted when validation fails.
func (h *Handler) Save(c *fiber.Ctx) error {
	var req yamlReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": "invalid payload"})
	}
	if err := h.checkDocument(req.YAML); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": err.Error()})
	}
	if err := h.store.SaveText(req.YAML); err != nil {
		logger.Error().Err(err).Msg("save cv data")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Validate checks the submitted document without persisting anything.
// Invalid input is a normal outcome here, so the status stays 200.
func (h *Handler) Validate(c *fiber.Ctx) error {
	var req yamlReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": "invalid payload"})
	}
	if err := h.checkDocument(req.YAML); err != nil {
		return c.JSON(fiber.Map{"ok": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Generate exports the PDF. The document may be supplied in the request
// body; otherwise the stored file is rendered.
func (h *Handler) Generate(c *fiber.Ctx) error {
	text := ""
	if len(c.Body()) > 0 {
		var req yamlReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": "invalid payload"})
		}
		text = req.YAML
	}
	if text == "" {
		loaded, err := h.store.LoadText()
		if err != nil {
			logger.Error().Err(err).Msg("load cv data")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "error": err.Error()})
		}
		text = loaded
	}

	if err := h.checkDocument(text); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": err.Error()})
	}
	rec, err := store.Decode(text)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": err.Error()})
	}

	pdf, err := h.exporter.Export(c.UserContext(), rec)
	if err != nil {
		logger.Error().Err(err).Msg("export failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "error": err.Error()})
	}

	filename := rec.OutputFilename()
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	logger.Info().Str("filename", filename).Int("bytes", len(pdf)).Msg("pdf exported")
	return c.Send(pdf)
}

// checkDocument runs the parse and schema checks shared by save, validate
// and generate.
func (h *Handler) checkDocument(text string) error {
	m, err := store.Parse(text)
	if err != nil {
		return err
	}
	return h.validator.ValidateMap(m)
}
