package mailservice

import (
	"bytes"
	"context"
	"html/template"
	"sync"
	"time"

	"github.com/go-mail/mail/v2"

	"github.com/sushihentaime/bloglist/internal/common"
)

const newBlogTemplate = "new_blog.tmpl"

type MailService struct {
	mb        common.MessageConsumer
	m         Mailer
	logger    MailLogger
	recipient string
	retry     retryPolicy
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

type MailLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

type Mail struct {
	mu     sync.Mutex
	dialer Dialer
	parser TemplateParser
	sender string
}

type Mailer interface {
	send(recipient string, data any, templateFile string) error
}

type Template struct {
	sets map[string]*template.Template
}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type TemplateParser interface {
	ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error)
}

type retryPolicy struct {
	maxRetries int
	baseDelay  time.Duration
}

// blogCreated mirrors the event published by the blog service.
type blogCreated struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	URL      *string `json:"url"`
	Username string  `json:"username"`
}

// newBlogPayload is the data handed to the new blog template.
type newBlogPayload struct {
	ID       int
	Title    string
	Author   string
	URL      string
	Username string
}
