package view

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-plantilla/pkg/model"
)

// ShowInfo writes the home info. Info without a mensaje field is replaced
// as a whole by model.NullInfo.
func (v *View) ShowInfo(info model.DownloadedInfo) Outcome {
	if !info.Has(model.InfoMensaje) {
		v.logger.Warn("view: home info without mensaje, using null info")
		info = model.NullInfo
	}
	info = v.infoFilter(info)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.replaceLocked(TitleHome, info.Mensaje.String())
	return succeeded()
}

// ShowAbout writes the about info as a message followed by the author,
// email and date. Info missing any of the four fields is replaced as a
// whole by model.NullInfo.
func (v *View) ShowAbout(info model.DownloadedInfo) Outcome {
	if !info.HasAll() {
		v.logger.Warn("view: about info incomplete, using null info")
		info = model.NullInfo
	}
	info = v.infoFilter(info)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.replaceLocked(TitleAbout, aboutBlock(info))
	return succeeded()
}

func aboutBlock(info model.DownloadedInfo) string {
	var b strings.Builder
	b.WriteString("<div>\n")
	b.WriteString("<p>" + info.Mensaje.String() + "</p>\n")
	b.WriteString("<ul>\n")
	b.WriteString("<li><b>Autor/a</b>: " + info.Autor.String() + "</li>\n")
	b.WriteString("<li><b>E-mail</b>: " + info.Email.String() + "</li>\n")
	b.WriteString("<li><b>Fecha</b>: " + info.Fecha.String() + "</li>\n")
	b.WriteString("</ul>\n")
	b.WriteString("</div>\n")
	return b.String()
}

// ProcessHome downloads the home info and shows it.
func (v *View) ProcessHome(ctx context.Context) Outcome {
	info, err := v.gateway.Home(ctx)
	if err != nil {
		return v.fail("home", err)
	}
	return v.ShowInfo(info)
}

// ProcessAbout downloads the about info and shows it.
func (v *View) ProcessAbout(ctx context.Context) Outcome {
	info, err := v.gateway.About(ctx)
	if err != nil {
		return v.fail("about", err)
	}
	return v.ShowAbout(info)
}

// ListAll downloads every persona and shows them as a table.
func (v *View) ListAll(ctx context.Context) Outcome {
	records, err := v.gateway.All(ctx)
	if err != nil {
		return v.fail("list", err)
	}
	content := v.renderer.RenderTable(records)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.replaceLocked(TitleList, content)
	v.logger.Debug("view: listed personas", zap.Int("count", len(records)))
	return succeeded()
}

// ListAllEditable downloads every persona and shows one form per persona.
// An empty collection leaves the content empty.
func (v *View) ListAllEditable(ctx context.Context) Outcome {
	records, err := v.gateway.All(ctx)
	if err != nil {
		return v.fail("list editable", err)
	}
	content := v.renderer.RenderForms(records)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.replaceLocked(TitleListEditable, content)
	v.logger.Debug("view: listed editable personas", zap.Int("count", len(records)))
	return succeeded()
}

// ShowOne downloads a persona and shows it as a form. The persona becomes
// the displayed record and the session returns to Viewing.
func (v *View) ShowOne(ctx context.Context, id string) Outcome {
	record, err := v.gateway.ByID(ctx, id)
	if err != nil {
		return v.fail("show one", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.showFormLocked(record)
	return succeeded()
}

// ShowOneAsTable downloads a persona and shows it as a one-row table. The
// persona becomes the displayed record.
func (v *View) ShowOneAsTable(ctx context.Context, id string) Outcome {
	record, err := v.gateway.ByID(ctx, id)
	if err != nil {
		return v.fail("show one as table", err)
	}
	content := v.renderer.RenderTable([]model.Record{record})

	v.mu.Lock()
	defer v.mu.Unlock()
	v.replaceLocked(TitleOne, content)
	v.displayed.Store(record)
	return succeeded()
}

// showFormLocked renders record as the detail form and resets the edit
// controls. Callers hold v.mu.
func (v *View) showFormLocked(record model.Record) {
	v.replaceLocked(TitleOne, v.renderer.RenderForm(record))
	v.displayed.Store(record)
	v.endEditLocked()
}

// replaceLocked swaps the page content. Any edit in progress ends with it,
// since the inputs it was editing are gone. Callers hold v.mu.
func (v *View) replaceLocked(title, content string) {
	v.page.Update(title, content)
	v.state = Viewing
}
