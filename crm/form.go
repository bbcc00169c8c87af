package crm

import (
	"fmt"
	"strings"
	"time"

	"crm_bridge/browser"
	"crm_bridge/mapping"
)

// Form reads and writes legacy form controls addressed by CSS locators.
type Form interface {
	SwitchTab(tab string) error
	// Read returns found=false when no control matches the locator.
	Read(d mapping.Descriptor) (raw mapping.RawValue, found bool, err error)
	Options(locator string) ([]mapping.Option, error)
	Select(locator, value string) error
	SelectMany(locator string, values []string) error
	SetValue(locator, value string) error
	SetChecked(locator string, checked bool) error
	SetRichText(locator, html string) error
	Checkboxes(locator string) ([]mapping.Checkbox, error)
	Check(locator string, index int) error
}

// FormFactory binds a Form to a page.
type FormFactory func(page browser.Page) Form

const tabSettle = 500 * time.Millisecond

// NewForm returns a Form driving page through injected scripts.
func NewForm(page browser.Page) Form {
	return &domForm{page: page}
}

type domForm struct {
	page browser.Page
}

const readScript = `({sel, kind}) => {
	const el = document.querySelector(sel);
	if (!el) return null;
	if (kind === 'checkbox') return {checked: !!el.checked};
	if (kind === 'checkbox-group') {
		const labels = [];
		document.querySelectorAll(sel).forEach(cb => {
			if (!cb.checked) return;
			let label = cb.parentElement ? (cb.parentElement.textContent || '').trim() : '';
			if (!label && cb.id) {
				const l = document.querySelector('label[for="' + cb.id + '"]');
				if (l) label = (l.textContent || '').trim();
			}
			if (label) labels.push(label);
		});
		return {values: labels};
	}
	if (kind === 'multi-select') {
		return {values: Array.from(el.selectedOptions || []).map(o => o.value)};
	}
	if (kind === 'select') {
		const opt = el.options[el.selectedIndex];
		return {value: el.value, text: opt ? (opt.text || '').trim() : ''};
	}
	if (kind === 'rich-text') {
		try {
			const tmce = window.tinyMCE;
			if (tmce && tmce.activeEditor) return {value: tmce.activeEditor.getContent()};
		} catch (e) {}
	}
	return {value: el.value};
}`

func (f *domForm) SwitchTab(tab string) error {
	if err := f.page.Click(tab); err != nil {
		return err
	}
	f.page.Sleep(tabSettle)
	return nil
}

func (f *domForm) Read(d mapping.Descriptor) (mapping.RawValue, bool, error) {
	res, err := f.page.Evaluate(readScript, map[string]any{"sel": d.Locator, "kind": string(d.Kind)})
	if err != nil {
		return mapping.RawValue{}, false, err
	}
	obj, ok := res.(map[string]any)
	if !ok {
		return mapping.RawValue{}, false, nil
	}
	return mapping.RawValue{
		Value:   asString(obj["value"]),
		Text:    asString(obj["text"]),
		Values:  asStrings(obj["values"]),
		Checked: asBool(obj["checked"]),
	}, true, nil
}

const optionsScript = `(sel) => {
	const el = document.querySelector(sel);
	if (!el || !el.options) return [];
	return Array.from(el.options).map(o => ({value: o.value, text: (o.text || '').trim()}));
}`

func (f *domForm) Options(locator string) ([]mapping.Option, error) {
	res, err := f.page.Evaluate(optionsScript, locator)
	if err != nil {
		return nil, err
	}
	items, _ := res.([]any)
	options := make([]mapping.Option, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		options = append(options, mapping.Option{Value: asString(obj["value"]), Text: asString(obj["text"])})
	}
	return options, nil
}

// Select also refreshes jQuery chosen widgets the legacy UI layers on top.
const selectScript = `({sel, values}) => {
	const el = document.querySelector(sel);
	if (!el) return false;
	if (el.multiple) {
		Array.from(el.options).forEach(o => { o.selected = values.includes(o.value); });
	} else {
		el.value = values[0];
	}
	el.dispatchEvent(new Event('change', {bubbles: true}));
	const $ = window.jQuery;
	if ($ && $(sel).length) $(sel).trigger('chosen:updated').trigger('change');
	return true;
}`

func (f *domForm) Select(locator, value string) error {
	return f.SelectMany(locator, []string{value})
}

func (f *domForm) SelectMany(locator string, values []string) error {
	res, err := f.page.Evaluate(selectScript, map[string]any{"sel": locator, "values": values})
	if err != nil {
		return err
	}
	if ok, _ := res.(bool); !ok {
		return fmt.Errorf("select %s not found", locator)
	}
	return nil
}

const setValueScript = `({sel, value}) => {
	const el = document.querySelector(sel);
	if (!el) return false;
	el.value = value;
	el.dispatchEvent(new Event('input', {bubbles: true}));
	el.dispatchEvent(new Event('change', {bubbles: true}));
	return true;
}`

func (f *domForm) SetValue(locator, value string) error {
	res, err := f.page.Evaluate(setValueScript, map[string]any{"sel": locator, "value": value})
	if err != nil {
		return err
	}
	if ok, _ := res.(bool); !ok {
		return fmt.Errorf("control %s not found", locator)
	}
	return nil
}

const setCheckedScript = `({sel, checked}) => {
	const el = document.querySelector(sel);
	if (!el) return false;
	if (!!el.checked !== checked) el.click();
	return true;
}`

func (f *domForm) SetChecked(locator string, checked bool) error {
	res, err := f.page.Evaluate(setCheckedScript, map[string]any{"sel": locator, "checked": checked})
	if err != nil {
		return err
	}
	if ok, _ := res.(bool); !ok {
		return fmt.Errorf("checkbox %s not found", locator)
	}
	return nil
}

const richTextScript = `({sel, html}) => {
	try {
		const tmce = window.tinyMCE;
		if (tmce && tmce.activeEditor) { tmce.activeEditor.setContent(html); return true; }
	} catch (e) {}
	const el = document.querySelector(sel);
	if (!el) return false;
	el.value = html;
	return true;
}`

func (f *domForm) SetRichText(locator, html string) error {
	res, err := f.page.Evaluate(richTextScript, map[string]any{"sel": locator, "html": html})
	if err != nil {
		return err
	}
	if ok, _ := res.(bool); !ok {
		return fmt.Errorf("rich text %s not found", locator)
	}
	return nil
}

const checkboxesScript = `(sel) => Array.from(document.querySelectorAll(sel)).map((cb, i) => {
	let label = cb.parentElement ? (cb.parentElement.textContent || '').trim() : '';
	if (!label && cb.id) {
		const l = document.querySelector('label[for="' + cb.id + '"]');
		if (l) label = (l.textContent || '').trim();
	}
	return {index: i, label: label, checked: !!cb.checked};
})`

func (f *domForm) Checkboxes(locator string) ([]mapping.Checkbox, error) {
	res, err := f.page.Evaluate(checkboxesScript, locator)
	if err != nil {
		return nil, err
	}
	items, _ := res.([]any)
	boxes := make([]mapping.Checkbox, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		boxes = append(boxes, mapping.Checkbox{
			Index:   asInt(obj["index"]),
			Label:   asString(obj["label"]),
			Checked: asBool(obj["checked"]),
		})
	}
	return boxes, nil
}

const checkScript = `({sel, index}) => {
	const cb = document.querySelectorAll(sel)[index];
	if (!cb) return false;
	if (!cb.checked) cb.click();
	return true;
}`

func (f *domForm) Check(locator string, index int) error {
	res, err := f.page.Evaluate(checkScript, map[string]any{"sel": locator, "index": index})
	if err != nil {
		return err
	}
	if ok, _ := res.(bool); !ok {
		return fmt.Errorf("checkbox %s[%d] not found", locator, index)
	}
	return nil
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func asStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := asString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	}
	return 0
}

// tabCursor remembers the active tab for one pipeline run.
type tabCursor struct {
	form   Form
	active string
}

func (c *tabCursor) enter(tab string) error {
	if tab == "" || tab == c.active {
		return nil
	}
	if err := c.form.SwitchTab(tab); err != nil {
		return fmt.Errorf("switch to tab %s: %w", tab, err)
	}
	c.active = tab
	return nil
}
