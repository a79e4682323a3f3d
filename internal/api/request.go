package api

import (
	"campaign/internal/service"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// multipartOverhead 为表单字段与边界预留的请求体空间
const multipartOverhead = 1 << 20

var (
	errInvalidPayload = errors.New("invalid request payload")
	errBodyTooLarge   = errors.New("request body too large")
)

// isBodyTooLarge 识别 MaxBytesReader 触发的超限错误
func isBodyTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large")
}

// parseID 读取路径中的 :id
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// readCandidateFields 解析候选人请求体，multipart 请求可附带最多一个 photo 文件
func (h *HTTPHandler) readCandidateFields(c *gin.Context) (service.Fields, *service.Upload, error) {
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		return h.readMultipart(c)
	}
	fields, err := readContentFields(c)
	return fields, nil, err
}

// readContentFields 解析不允许上传文件的内容资源请求体，请求体上限为 multipartOverhead
func readContentFields(c *gin.Context) (service.Fields, error) {
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, multipartOverhead)
	}
	fields, err := decodeContentFields(c)
	if err != nil && !errors.Is(err, errInvalidPayload) && isBodyTooLarge(err) {
		return nil, errBodyTooLarge
	}
	return fields, err
}

func decodeContentFields(c *gin.Context) (service.Fields, error) {
	switch c.ContentType() {
	case gin.MIMEMultipartPOSTForm:
		if err := c.Request.ParseMultipartForm(multipartOverhead); err != nil {
			if isBodyTooLarge(err) {
				return nil, err
			}
			return nil, errInvalidPayload
		}
		for name, files := range c.Request.MultipartForm.File {
			if len(files) > 0 {
				return nil, &service.FileError{Reason: fmt.Sprintf("Unexpected file field %q", name)}
			}
		}
		return firstValues(c.Request.MultipartForm.Value), nil
	case gin.MIMEPOSTForm:
		if err := c.Request.ParseForm(); err != nil {
			if isBodyTooLarge(err) {
				return nil, err
			}
			return nil, errInvalidPayload
		}
		return firstValues(c.Request.PostForm), nil
	default:
		return readJSONFields(c.Request.Body)
	}
}

// readJSONFields 解码 JSON 对象，数字保留为 json.Number
func readJSONFields(body io.Reader) (service.Fields, error) {
	if body == nil {
		return service.Fields{}, nil
	}
	decoder := json.NewDecoder(body)
	decoder.UseNumber()

	var fields service.Fields
	if err := decoder.Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return service.Fields{}, nil
		}
		if isBodyTooLarge(err) {
			return nil, err
		}
		return nil, errInvalidPayload
	}
	if fields == nil {
		fields = service.Fields{}
	}
	return fields, nil
}

func (h *HTTPHandler) readMultipart(c *gin.Context) (service.Fields, *service.Upload, error) {
	maxPhoto := h.services.Candidates.Photos().MaxBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhoto+multipartOverhead)

	if err := c.Request.ParseMultipartForm(maxPhoto + multipartOverhead); err != nil {
		if isBodyTooLarge(err) {
			return nil, nil, &service.FileError{Reason: fmt.Sprintf("File too large. Maximum size is %dMB", maxPhoto>>20)}
		}
		return nil, nil, errInvalidPayload
	}
	form := c.Request.MultipartForm
	fields := firstValues(form.Value)

	var upload *service.Upload
	for name, files := range form.File {
		if len(files) == 0 {
			continue
		}
		if name != "photo" {
			return nil, nil, &service.FileError{Reason: fmt.Sprintf("Unexpected file field %q", name)}
		}
		if len(files) > 1 {
			return nil, nil, &service.FileError{Reason: "Only one photo may be uploaded"}
		}
		loaded, err := loadUpload(files[0], maxPhoto)
		if err != nil {
			return nil, nil, err
		}
		upload = loaded
	}
	return fields, upload, nil
}

// loadUpload 读取上传文件，最多读取 limit+1 字节以便识别超限
func loadUpload(fh *multipart.FileHeader, limit int64) (*service.Upload, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return &service.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Data:        data,
	}, nil
}

func firstValues(values map[string][]string) service.Fields {
	fields := make(service.Fields, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			fields[key] = vals[0]
		}
	}
	return fields
}

// respondRequestError 请求体解析失败时的响应
func respondRequestError(c *gin.Context, err error) {
	if errors.Is(err, errInvalidPayload) {
		InvalidPayload(c)
		return
	}
	if errors.Is(err, errBodyTooLarge) {
		ErrorResponse(c, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, "Request body too large")
		return
	}
	respondError(c, err, "Failed to read request")
}
