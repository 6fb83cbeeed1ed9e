package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shouni/gemini-pose-kit/pkg/domain"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string           `json:"error"`
	Kind  domain.ErrorKind `json:"kind,omitempty"`
}

type templatesResponse struct {
	Templates  []domain.PoseTemplate `json:"templates"`
	SelectedID string                `json:"selected_id,omitempty"`
}

type resultResponse struct {
	Loading          bool                 `json:"loading"`
	HasUserImage     bool                 `json:"has_user_image"`
	SelectedTemplate *domain.PoseTemplate `json:"selected_template,omitempty"`
	Image            string               `json:"image,omitempty"`
	Error            string               `json:"error,omitempty"`
}

type generateResponse struct {
	Image string `json:"image"`
}

func (s *Server) listTemplates(c *gin.Context) {
	resp := templatesResponse{Templates: s.session.Templates()}
	if tmpl := s.session.State().SelectedTemplate; tmpl != nil {
		resp.SelectedID = tmpl.ID
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) uploadTemplate(c *gin.Context) {
	file, closeFn, ok := formImage(c)
	if !ok {
		return
	}
	defer closeFn()

	tmpl, err := s.session.UploadTemplate(file)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tmpl)
}

func (s *Server) selectTemplate(c *gin.Context) {
	if err := s.session.SelectTemplate(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) uploadUserImage(c *gin.Context) {
	file, closeFn, ok := formImage(c)
	if !ok {
		return
	}
	defer closeFn()

	if err := s.session.UploadUserImage(file); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) generate(c *gin.Context) {
	resp, err := s.session.Generate(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, generateResponse{Image: resp.DataURL()})
}

func (s *Server) result(c *gin.Context) {
	st := s.session.State()
	resp := resultResponse{
		Loading:          st.Loading,
		HasUserImage:     st.HasUserImage,
		SelectedTemplate: st.SelectedTemplate,
	}
	if st.Result != nil {
		if st.Result.Image != nil {
			resp.Image = st.Result.Image.DataURL()
		}
		resp.Error = st.Result.Error
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) download(c *gin.Context) {
	st := s.session.State()
	if st.Result == nil || st.Result.Image == nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: "No generated image available."})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, domain.ResultFileName))
	c.Data(http.StatusOK, "image/png", st.Result.Image.Data)
}

func (s *Server) reset(c *gin.Context) {
	s.session.Reset()
	c.Status(http.StatusNoContent)
}

// formImage はマルチパートの "file" フィールドを取り出し、許可された画像形式だけを受け付けます。
func formImage(c *gin.Context) (domain.File, func(), bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "An image file is required in the \"file\" field."})
		return domain.File{}, nil, false
	}

	mimeType := fh.Header.Get("Content-Type")
	if !domain.IsAllowedMimeType(mimeType) {
		c.JSON(http.StatusUnsupportedMediaType, errorResponse{Error: fmt.Sprintf("Unsupported image type %q. Use PNG, JPEG or WEBP.", mimeType)})
		return domain.File{}, nil, false
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, domain.NewError(domain.KindRead, fmt.Sprintf("Failed to read image file: %v", err), err))
		return domain.File{}, nil, false
	}

	return domain.File{Name: fh.Filename, MimeType: mimeType, Content: f}, func() { _ = f.Close() }, true
}

// writeError はエラーの種類に応じたステータスでメッセージをそのまま返します。
func writeError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	msg := err.Error()
	if kind == "" && msg == "" {
		msg = domain.MsgUnknown
	}
	c.JSON(statusFor(err), errorResponse{Error: msg, Kind: kind})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingInput),
		errors.Is(err, domain.ErrRead),
		errors.Is(err, domain.ErrMalformedDataReference):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSafetyBlocked):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrFetch),
		errors.Is(err, domain.ErrNoImageProduced),
		errors.Is(err, domain.ErrGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
