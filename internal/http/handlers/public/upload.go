package public

import (
	"github.com/salesorder-next/internal/constants"
	"github.com/salesorder-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadAttachment 上传付款凭证
func (h *Handler) UploadAttachment(c *gin.Context) {
	h.handleUpload(c, constants.UploadSceneAttachment)
}

// UploadDesignFile 上传设计稿
func (h *Handler) UploadDesignFile(c *gin.Context) {
	h.handleUpload(c, constants.UploadSceneDesign)
}

func (h *Handler) handleUpload(c *gin.Context, scene string) {
	id, ok := getFormID(c)
	if !ok {
		return
	}
	// 先确认会话存在，避免写入孤立文件
	if _, err := h.FormService.Get(id); err != nil {
		respondFormError(c, err)
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.upload_missing", nil)
		return
	}
	ref, err := h.UploadService.SaveFile(file, scene)
	if err != nil {
		respondWithMappedError(c, err, formErrorRules, response.CodeInternal, "error.upload_failed")
		return
	}
	if scene == constants.UploadSceneDesign {
		view, err := h.FormService.SetDesignFile(id, ref)
		if err != nil {
			respondFormError(c, err)
			return
		}
		response.Success(c, gin.H{"file": ref, "form": view})
		return
	}
	view, err := h.FormService.SetAttachment(id, ref)
	if err != nil {
		respondFormError(c, err)
		return
	}
	response.Success(c, gin.H{"file": ref, "form": view})
}
