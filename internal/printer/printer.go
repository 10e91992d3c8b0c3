// Package printer writes styled command output to the terminal.
package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/colonyops/techtrack/internal/core/notify"
	"github.com/colonyops/techtrack/internal/core/styles"
	"github.com/colonyops/techtrack/internal/core/tech"
)

type ctxKey struct{}

// Printer renders messages and tables for commands.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

// New returns a printer writing normal output to out and errors to errOut.
func New(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut}
}

// WithPrinter attaches p to ctx.
func WithPrinter(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer attached to ctx, or one writing to stdout/stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stdout, os.Stderr)
}

// Writer returns the normal output writer.
func (p *Printer) Writer() io.Writer { return p.out }

// Printf writes unstyled formatted text.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// Println writes unstyled text followed by a newline.
func (p *Printer) Println(args ...any) {
	_, _ = fmt.Fprintln(p.out, args...)
}

// Header writes a bold section title.
func (p *Printer) Header(title string) {
	_, _ = fmt.Fprintln(p.out, styles.HeaderStyle.Render(title))
}

// Success writes a success line.
func (p *Printer) Success(msg string) {
	p.line(p.out, styles.SuccessStyle.Render("✔"), msg)
}

// Successf writes a formatted success line.
func (p *Printer) Successf(format string, args ...any) {
	p.Success(fmt.Sprintf(format, args...))
}

// Infof writes a formatted info line.
func (p *Printer) Infof(format string, args ...any) {
	p.line(p.out, styles.InfoStyle.Render("•"), fmt.Sprintf(format, args...))
}

// Warnf writes a formatted warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line(p.errOut, styles.WarningStyle.Render("!"), fmt.Sprintf(format, args...))
}

// Errorf writes a formatted error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(p.errOut, styles.ErrorStyle.Render("✘"), fmt.Sprintf(format, args...))
}

// Error writes err. Validation errors are written one field per line.
func (p *Printer) Error(err error) {
	var ve *tech.ValidationError
	if !errors.As(err, &ve) {
		p.Errorf("%v", err)
		return
	}

	p.Errorf("validation failed")
	for _, fe := range ve.Fields {
		_, _ = fmt.Fprintf(p.errOut, "  %s %s\n", styles.MutedStyle.Render(fe.Field+":"), fe.Err)
	}
}

// Notification writes a bus notification with its level styling. An
// attached action is shown as a hint.
func (p *Printer) Notification(n notify.Notification) {
	msg := n.Message
	if label := n.ActionLabel(); label != "" {
		msg += " " + styles.MutedStyle.Render("["+label+"]")
	}

	switch n.Level {
	case notify.LevelSuccess:
		p.Success(msg)
	case notify.LevelWarning:
		p.Warnf("%s", msg)
	case notify.LevelError:
		p.Errorf("%s", msg)
	default:
		p.Infof("%s", msg)
	}
}

func (p *Printer) line(w io.Writer, icon, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", icon, msg)
}
