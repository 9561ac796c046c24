package ui

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/kbukum/promptserve/client"
	"github.com/kbukum/promptserve/logger"
	"github.com/kbukum/promptserve/validation"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

const pageTitle = "Essay and Poem Writer"

// Paths are the invoke routes the panels call.
type Paths struct {
	Essay string
	Poem  string
}

// UI renders the writer page.
type UI struct {
	inv   client.Invoker
	paths Paths
	log   *logger.Logger
}

// New creates a UI that calls the serving front through inv.
func New(inv client.Invoker, paths Paths, log *logger.Logger) *UI {
	if paths.Essay == "" {
		paths.Essay = "/essay/invoke"
	}
	if paths.Poem == "" {
		paths.Poem = "/poem/invoke"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UI{inv: inv, paths: paths, log: log.WithComponent("ui")}
}

// Register mounts the page routes on r.
func (u *UI) Register(r gin.IRouter) {
	r.GET("/", u.index)
	r.POST("/"+essaySpec.id, u.submit(essaySpec))
	r.POST("/"+poemSpec.id, u.submit(poemSpec))
}

func (u *UI) index(c *gin.Context) {
	u.render(c, http.StatusOK, essaySpec.empty(), poemSpec.empty())
}

func (u *UI) submit(spec panelSpec) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := u.handle(c.Request.Context(), spec, c.PostForm("topic"))
		status := http.StatusOK
		if p.Notice != nil && p.Notice.Kind == NoticeWarning {
			status = http.StatusUnprocessableEntity
		}

		essay, poem := essaySpec.empty(), poemSpec.empty()
		if spec.id == essaySpec.id {
			essay = p
		} else {
			poem = p
		}
		u.render(c, status, essay, poem)
	}
}

// handle runs one panel submission. A blank topic is rejected before any
// network call.
func (u *UI) handle(ctx context.Context, spec panelSpec, topic string) Panel {
	p := spec.empty()
	p.Topic = topic

	if v := validation.New().Required("topic", topic); v.HasErrors() {
		p.Notice = &Notice{Kind: NoticeWarning, Text: "Please enter a topic."}
		return p
	}

	var failure string
	notify := client.NotifierFunc(func(msg string) { failure = msg })
	text, ok := client.Call(ctx, u.inv, notify, spec.path(u), map[string]string{"topic": topic})
	if !ok {
		u.log.WithContext(ctx).Warn("generation failed", logger.Fields("panel", spec.id, "message", failure))
		p.Notice = &Notice{Kind: NoticeError, Text: failure}
		return p
	}

	p.Notice = &Notice{Kind: NoticeSuccess, Text: spec.success}
	p.Result = text
	return p
}

func (u *UI) render(c *gin.Context, status int, panels ...Panel) {
	c.Render(status, render.HTML{
		Template: pageTemplate,
		Name:     "index.html",
		Data:     page{Title: pageTitle, Panels: panels},
	})
}
