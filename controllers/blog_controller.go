// File: /controllers/blog_controller.go
package controllers

import (
	"net/http"
	"time"

	"aquaevents-api/models"
	"aquaevents-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogController manages site articles. Regular authors submit drafts that
// land as pending; admin posts publish immediately.
type BlogController struct {
	db *gorm.DB
}

func NewBlogController(db *gorm.DB) *BlogController {
	return &BlogController{db: db}
}

func (bc *BlogController) GetPublishedPosts(c *gin.Context) {
	query := bc.db.Where("status = ?", models.BlogStatusPublished).Order("published_at DESC")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var posts []models.BlogPost
	if err := query.Find(&posts).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"count": len(posts),
	})
}

func (bc *BlogController) GetPostBySlug(c *gin.Context) {
	var post models.BlogPost
	err := bc.db.Where("slug = ? AND status = ?", c.Param("slug"), models.BlogStatusPublished).First(&post).Error
	if err != nil {
		utils.SendError(c, http.StatusNotFound, "Post not found")
		return
	}

	c.JSON(http.StatusOK, post)
}

type CreatePostRequest struct {
	Title      string   `json:"title" binding:"required"`
	Slug       string   `json:"slug"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content" binding:"required"`
	CoverImage string   `json:"cover_image"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags"`
}

func (bc *BlogController) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Title)
	}

	var existing models.BlogPost
	if err := bc.db.Where("slug = ?", slug).First(&existing).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "A post with this slug already exists")
		return
	}

	// Admin posts go live immediately; everyone else waits for review.
	status := models.BlogStatusPending
	var publishedAt *time.Time
	if c.GetString("role") == models.RoleAdmin {
		status = models.BlogStatusPublished
		now := time.Now()
		publishedAt = &now
	}

	post := models.BlogPost{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Slug:        slug,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		CoverImage:  req.CoverImage,
		Category:    req.Category,
		Tags:        models.StringSlice(req.Tags),
		AuthorID:    c.GetString("user_id"),
		Status:      status,
		PublishedAt: publishedAt,
	}

	if err := bc.db.Create(&post).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create post")
		return
	}

	utils.SendCreated(c, "Post created", post)
}

type UpdatePostStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft pending published archived"`
}

// UpdatePostStatus lets an admin move a post through the editorial states.
func (bc *BlogController) UpdatePostStatus(c *gin.Context) {
	var req UpdatePostStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var post models.BlogPost
	if err := bc.db.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Post not found")
		return
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Status == models.BlogStatusPublished && post.PublishedAt == nil {
		now := time.Now()
		updates["published_at"] = &now
	}

	if err := bc.db.Model(&post).Updates(updates).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to update post")
		return
	}

	utils.SendSuccess(c, "Post status updated", nil)
}
