package aevum

import (
	"fmt"
	"strings"
	"time"
)

// Session is the signed-in identity shown in the header.
type Session struct {
	DisplayName string
}

// SessionProvider returns the current session, or nil when signed out.
type SessionProvider interface {
	Session() *Session
}

// SessionFunc adapts a function to SessionProvider.
type SessionFunc func() *Session

// Session calls f.
func (f SessionFunc) Session() *Session { return f() }

// Greeting returns the header greeting for s, or "" when signed out.
func Greeting(s *Session) string {
	if s == nil {
		return ""
	}
	name := strings.TrimSpace(s.DisplayName)
	if name == "" {
		name = "User"
	}
	return "Hello, " + name
}

// HeroTargets are the nodes the hero mount animates. Features are the feature
// cards in document order.
type HeroTargets struct {
	Section  *Node
	Content  *Node
	Title    *Node
	Subtitle *Node
	Actions  *Node
	Showcase *Node
	Features []*Node
}

// HeaderTargets are the nodes the header entrance animates.
type HeaderTargets struct {
	Bar     *Node
	Logo    *Node
	Actions *Node
	Label   *Node
}

// SectionTargets are one section's heading and its cards in document order.
// Name selects the section's motion config.
type SectionTargets struct {
	Name    string
	Heading *Node
	Cards   []*Node
}

// Page is a built landing page.
type Page struct {
	Header   HeaderTargets
	Hero     HeroTargets
	Sections []SectionTargets
	Height   float64

	greeting *Node
	login    *Node
	actions  *Node
	headerW  float64
	gutter   float64
}

// Cards returns the feature cards followed by every section's cards, in
// document order.
func (p *Page) Cards() []*Node {
	cards := append([]*Node(nil), p.Hero.Features...)
	for _, s := range p.Sections {
		cards = append(cards, s.Cards...)
	}
	return cards
}

// SetSession updates the header for a new session.
func (p *Page) SetSession(s *Session) {
	g := Greeting(s)
	if p.greeting != nil {
		p.greeting.TextBlock.SetContent(g)
		p.greeting.Width, p.greeting.Height = p.greeting.TextBlock.Measure()
		p.greeting.Visible = g != ""
	}
	if p.login != nil {
		p.login.Visible = g == ""
		p.login.Interactable = g == ""
	}
	p.layoutHeaderActions()
}

// layoutHeaderActions right-aligns the visible header actions.
func (p *Page) layoutHeaderActions() {
	a := p.actions
	if a == nil {
		return
	}
	x := 0.0
	for _, n := range a.children {
		if !n.Visible {
			continue
		}
		n.X = x
		n.Y = (a.Height - n.Height) / 2
		n.MarkDirty()
		x += n.Width + p.gutter
	}
	a.Width = max(0, x-p.gutter)
	a.X = p.headerW - p.gutter - a.Width
	a.MarkDirty()
}

// Layout metrics in document units.
const (
	sectionPadding = 96
	headingGap     = 48
	cardPadding    = 24
	buttonHeight   = 44
	buttonPadX     = 24
	heroTop        = 80
	showcaseHeight = 240
)

// BuildPage lays out the landing page into scene: the header in the overlay,
// everything else in the document. It sets the document height and registers
// section anchors. sessions may be nil.
func BuildPage(scene *Scene, cfg Config, sessions SessionProvider) *Page {
	vw := scene.camera.Viewport.Width
	b := &pageBuilder{
		scene: scene,
		theme: cfg.Theme,
		vw:    vw,
		vh:    scene.camera.Viewport.Height,
	}
	b.width = min(cfg.Theme.Width, vw) - 2*cfg.Theme.Gutter
	b.left = (vw - b.width) / 2
	scene.ClearColor = cfg.Theme.Background

	var session *Session
	if sessions != nil {
		session = sessions.Session()
	}

	p := &Page{}
	p.Header = b.header(cfg.Content, p)
	p.SetSession(session)

	c := cfg.Content
	p.Hero = b.hero(c)

	features, cards := b.section("features", c.Features, b.featureCard)
	p.Hero.Features = cards
	p.Sections = append(p.Sections, SectionTargets{Name: "features", Heading: features})

	for _, sec := range []struct {
		name string
		data Section
		card func(string, Card, float64) *Node
	}{
		{"steps", c.Steps, b.stepCard},
		{"testimonials", c.Testimonials, b.testimonialCard},
		{"pricing", c.Pricing, b.pricingCard},
	} {
		heading, cards := b.section(sec.name, sec.data, sec.card)
		p.Sections = append(p.Sections, SectionTargets{Name: sec.name, Heading: heading, Cards: cards})
	}

	p.Sections = append(p.Sections, SectionTargets{Name: "cta", Heading: b.cta(c.CTA)})
	b.footer(c)

	p.Height = b.y
	scene.SetDocumentHeight(b.y)
	scene.refreshTransforms()
	logger.Debug("page built")
	return p
}

// initial returns the first rune of s, upper-cased.
func initial(s string) string {
	for _, r := range s {
		return strings.ToUpper(string(r))
	}
	return "?"
}

type pageBuilder struct {
	scene  *Scene
	theme  Theme
	vw, vh float64
	left   float64
	width  float64
	y      float64
}

func (b *pageBuilder) text(name, s string, size float64, c Color, wrap float64, align TextAlign) *Node {
	tb := NewTextBlock(s)
	tb.Size = size
	tb.Color = c
	tb.WrapWidth = wrap
	tb.Align = align
	return NewText(name, tb)
}

// button is a filled rect with a centered label. Clicking it follows link.
func (b *pageBuilder) button(name string, link Link, fill, fg Color) *Node {
	label := b.text(name+"-label", link.Label, 2, fg, 0, TextAlignLeft)
	btn := NewRect(name, label.Width+2*buttonPadX, buttonHeight, fill)
	btn.Interactable = true
	btn.Link = link.Route
	label.X = buttonPadX
	label.Y = (buttonHeight - label.Height) / 2
	btn.AddChild(label)
	return btn
}

// row places nodes left to right with gap, centered in width. It returns the
// row's height.
func row(nodes []*Node, width, gap float64) float64 {
	total, h := 0.0, 0.0
	for i, n := range nodes {
		if i > 0 {
			total += gap
		}
		total += n.Width
		h = max(h, n.Height)
	}
	x := (width - total) / 2
	for _, n := range nodes {
		n.X = x
		x += n.Width + gap
	}
	return h
}

func (b *pageBuilder) header(c Content, p *Page) HeaderTargets {
	t := b.theme
	h := t.HeaderHeight
	bar := NewRect("header", b.vw, h, t.Surface.WithAlpha(0.9))
	b.scene.overlay.AddChild(bar)

	logo := NewContainer("header-logo")
	logoText := b.text("header-logo-text", c.Brand+".", 2, t.Text, 0, TextAlignLeft)
	logo.Width, logo.Height = logoText.Width, logoText.Height
	logo.Interactable = true
	logo.Link = "/"
	logo.AddChild(logoText)
	logo.X = t.Gutter
	logo.Y = (h - logo.Height) / 2
	bar.AddChild(logo)

	actions := NewContainer("header-actions")
	var items []*Node
	for i, l := range c.Nav {
		n := b.text(fmt.Sprintf("nav-%d", i), l.Label, 1.5, t.Muted, 0, TextAlignLeft)
		n.Interactable = true
		n.Link = l.Route
		items = append(items, n)
	}
	greeting := b.text("header-greeting", "", 1.5, t.Text, 0, TextAlignLeft)
	login := b.button("header-login", c.Login, t.Accent, t.Text)
	items = append(items, greeting, login)

	for _, n := range items {
		actions.AddChild(n)
	}
	actions.Height = buttonHeight
	actions.Y = (h - actions.Height) / 2
	bar.AddChild(actions)

	p.greeting = greeting
	p.login = login
	p.actions = actions
	p.headerW = b.vw
	p.gutter = t.Gutter
	return HeaderTargets{Bar: bar, Logo: logo, Actions: actions, Label: login.ChildAt(0)}
}

func (b *pageBuilder) hero(c Content) HeroTargets {
	t := b.theme
	section := NewContainer("hero")
	section.Width = b.vw
	b.scene.root.AddChild(section)
	b.scene.RegisterAnchor("top", section)

	glow := NewRect("hero-glow", b.vw, 0, t.AccentAlt.WithAlpha(0.08))
	section.AddChild(glow)

	content := NewContainer("hero-content")
	content.X = b.left
	content.Y = t.HeaderHeight + heroTop
	content.Width = b.width
	section.AddChild(content)

	title := b.text("hero-title", c.Brand, 6, t.Text, 0, TextAlignCenter)
	title.X = (b.width - title.Width) / 2
	title.CenterPivot()
	content.AddChild(title)
	y := title.Height + 24

	subtitle := b.text("hero-subtitle", c.Tagline, 2, t.Muted, b.width*0.8, TextAlignCenter)
	subtitle.X = (b.width - subtitle.Width) / 2
	subtitle.Y = y
	content.AddChild(subtitle)
	y += subtitle.Height + 32

	actions := NewContainer("hero-actions")
	primary := b.button("hero-primary", c.Primary, t.Accent, t.Text)
	secondary := b.button("hero-secondary", c.Secondary, t.Surface, t.Text)
	actions.AddChild(primary)
	actions.AddChild(secondary)
	actions.Height = row([]*Node{primary, secondary}, b.width, 16)
	actions.Width = b.width
	actions.Y = y
	content.AddChild(actions)
	y += actions.Height

	content.Height = y
	content.CenterPivot()

	showcase := NewRect("hero-showcase", b.width*0.8, showcaseHeight, t.Surface)
	showcase.X = b.left + b.width*0.1
	showcase.Y = t.HeaderHeight + heroTop + y + headingGap
	frame := NewRect("hero-showcase-bar", showcase.Width, 28, t.Border)
	showcase.AddChild(frame)
	section.AddChild(showcase)

	section.Height = max(b.vh, showcase.Y+showcase.Height+sectionPadding)
	glow.Height = section.Height
	b.y = section.Height

	return HeroTargets{
		Section:  section,
		Content:  content,
		Title:    title,
		Subtitle: subtitle,
		Actions:  actions,
		Showcase: showcase,
	}
}

// section lays out a heading block and a grid of cards starting at the
// current cursor and advances it.
func (b *pageBuilder) section(name string, s Section, card func(string, Card, float64) *Node) (*Node, []*Node) {
	t := b.theme
	sec := NewContainer(name)
	sec.Y = b.y
	sec.Width = b.vw
	b.scene.root.AddChild(sec)
	if s.Anchor != "" {
		b.scene.RegisterAnchor(s.Anchor, sec)
	}

	heading := b.headingBlock(name+"-heading", s.Heading, s.Subheading)
	heading.Y = sectionPadding
	sec.AddChild(heading)
	y := heading.Y + heading.Height + headingGap

	cols := 3
	if b.width < 600 {
		cols = 1
	}
	cardW := (b.width - t.Gutter*float64(cols-1)) / float64(cols)

	var cards []*Node
	rowH := 0.0
	for i, c := range s.Cards {
		col := i % cols
		if col == 0 && i > 0 {
			y += rowH + t.Gutter
			rowH = 0
		}
		n := card(fmt.Sprintf("%s-card-%d", name, i), c, cardW)
		n.X = b.left + float64(col)*(cardW+t.Gutter)
		n.Y = y
		sec.AddChild(n)
		cards = append(cards, n)
		rowH = max(rowH, n.Height)
	}
	// Cards in a row share the tallest card's height.
	for i := 0; i < len(cards); i += cols {
		end := min(i+cols, len(cards))
		h := 0.0
		for _, n := range cards[i:end] {
			h = max(h, n.Height)
		}
		for _, n := range cards[i:end] {
			stretchCard(n, h)
		}
	}
	y += rowH

	sec.Height = y + sectionPadding
	b.y += sec.Height
	return heading, cards
}

func (b *pageBuilder) headingBlock(name, heading, sub string) *Node {
	t := b.theme
	block := NewContainer(name)
	block.X = b.left
	block.Width = b.width

	h := b.text(name+"-title", heading, 3, t.Text, b.width, TextAlignCenter)
	h.X = (b.width - h.Width) / 2
	block.AddChild(h)
	y := h.Height

	if sub != "" {
		s := b.text(name+"-sub", sub, 1.5, t.Muted, b.width*0.7, TextAlignCenter)
		s.X = (b.width - s.Width) / 2
		s.Y = y + 16
		block.AddChild(s)
		y = s.Y + s.Height
	}
	block.Height = y
	return block
}

// cardShell returns a card container with its background as the first child.
func (b *pageBuilder) cardShell(name string, w float64, highlight bool) (*Node, *Node) {
	t := b.theme
	card := NewContainer(name)
	card.Width = w
	border := t.Border
	if highlight {
		border = t.Accent
	}
	edge := NewRect(name+"-border", w, 0, border)
	bg := NewRect(name+"-bg", w-2, 0, t.Surface)
	bg.X, bg.Y = 1, 1
	card.AddChild(edge)
	card.AddChild(bg)
	return card, edge
}

// stretchCard sets a card's height and resizes its background layers.
func stretchCard(card *Node, h float64) {
	card.Height = h
	if card.NumChildren() >= 2 {
		card.ChildAt(0).Height = h
		card.ChildAt(1).Height = h - 2
	}
}

func (b *pageBuilder) badge(name, s string, fill Color) *Node {
	badge := NewRect(name, 48, 48, fill)
	label := b.text(name+"-label", s, 1.5, b.theme.Text, 0, TextAlignLeft)
	label.X = (48 - label.Width) / 2
	label.Y = (48 - label.Height) / 2
	badge.AddChild(label)
	return badge
}

func (b *pageBuilder) featureCard(name string, c Card, w float64) *Node {
	t := b.theme
	card, _ := b.cardShell(name, w, c.Highlight)
	inner := w - 2*cardPadding

	badge := b.badge(name+"-icon", c.Badge, t.Accent.WithAlpha(0.2))
	badge.X, badge.Y = cardPadding, cardPadding
	card.AddChild(badge)
	y := badge.Y + badge.Height + 16

	title := b.text(name+"-title", c.Title, 2, t.Text, inner, TextAlignLeft)
	title.X, title.Y = cardPadding, y
	card.AddChild(title)
	y += title.Height + 8

	body := b.text(name+"-body", c.Body, 1, t.Muted, inner, TextAlignLeft)
	body.X, body.Y = cardPadding, y
	card.AddChild(body)
	stretchCard(card, y+body.Height+cardPadding)
	return card
}

func (b *pageBuilder) stepCard(name string, c Card, w float64) *Node {
	t := b.theme
	card, _ := b.cardShell(name, w, false)
	inner := w - 2*cardPadding

	num := b.text(name+"-step", c.Badge, 4, t.Accent, 0, TextAlignLeft)
	num.X, num.Y = cardPadding, cardPadding
	card.AddChild(num)
	y := num.Y + num.Height + 16

	title := b.text(name+"-title", c.Title, 2, t.Text, inner, TextAlignLeft)
	title.X, title.Y = cardPadding, y
	card.AddChild(title)
	y += title.Height + 8

	body := b.text(name+"-body", c.Body, 1, t.Muted, inner, TextAlignLeft)
	body.X, body.Y = cardPadding, y
	card.AddChild(body)
	stretchCard(card, y+body.Height+cardPadding)
	return card
}

func (b *pageBuilder) testimonialCard(name string, c Card, w float64) *Node {
	t := b.theme
	card, _ := b.cardShell(name, w, false)
	inner := w - 2*cardPadding

	avatar := b.badge(name+"-avatar", c.Badge, t.AccentAlt.WithAlpha(0.3))
	avatar.X, avatar.Y = cardPadding, cardPadding
	card.AddChild(avatar)

	who := b.text(name+"-name", c.Title, 1.5, t.Text, 0, TextAlignLeft)
	who.X, who.Y = avatar.X+avatar.Width+12, avatar.Y+4
	card.AddChild(who)
	role := b.text(name+"-role", c.Meta, 1, t.Muted, 0, TextAlignLeft)
	role.X, role.Y = who.X, who.Y+who.Height+4
	card.AddChild(role)
	y := avatar.Y + avatar.Height + 16

	if c.Stars > 0 {
		stars := b.text(name+"-stars", strings.Repeat("*", c.Stars), 2, t.Accent, 0, TextAlignLeft)
		stars.X, stars.Y = cardPadding, y
		card.AddChild(stars)
		y += stars.Height + 8
	}

	body := b.text(name+"-quote", `"`+c.Body+`"`, 1, t.Muted, inner, TextAlignLeft)
	body.X, body.Y = cardPadding, y
	card.AddChild(body)
	stretchCard(card, y+body.Height+cardPadding)
	return card
}

func (b *pageBuilder) pricingCard(name string, c Card, w float64) *Node {
	t := b.theme
	card, _ := b.cardShell(name, w, c.Highlight)
	inner := w - 2*cardPadding
	y := float64(cardPadding)

	if c.Highlight {
		tag := b.text(name+"-popular", "MOST POPULAR", 1, t.Accent, 0, TextAlignLeft)
		tag.X, tag.Y = cardPadding, y
		card.AddChild(tag)
		y += tag.Height + 8
	}

	title := b.text(name+"-title", c.Title, 2, t.Text, inner, TextAlignLeft)
	title.X, title.Y = cardPadding, y
	card.AddChild(title)
	y += title.Height + 8

	price := b.text(name+"-price", c.Meta, 3, t.Text, 0, TextAlignLeft)
	price.X, price.Y = cardPadding, y
	card.AddChild(price)
	y += price.Height + 8

	desc := b.text(name+"-desc", c.Body, 1, t.Muted, inner, TextAlignLeft)
	desc.X, desc.Y = cardPadding, y
	card.AddChild(desc)
	y += desc.Height + 16

	for i, item := range c.Bullets {
		li := b.text(fmt.Sprintf("%s-item-%d", name, i), "+ "+item, 1, t.Text, inner, TextAlignLeft)
		li.X, li.Y = cardPadding, y
		card.AddChild(li)
		y += li.Height + 6
	}
	y += 16

	if c.Action.Label != "" {
		fill := t.Surface
		if c.Highlight {
			fill = t.AccentAlt
		}
		btn := b.button(name+"-action", c.Action, fill, t.Text)
		btn.X, btn.Y = cardPadding, y
		card.AddChild(btn)
		y += btn.Height
	}
	stretchCard(card, y+cardPadding)
	return card
}

func (b *pageBuilder) cta(c CallToAction) *Node {
	t := b.theme
	sec := NewContainer("cta")
	sec.Y = b.y
	sec.Width = b.vw
	b.scene.root.AddChild(sec)
	if c.Anchor != "" {
		b.scene.RegisterAnchor(c.Anchor, sec)
	}

	box, _ := b.cardShell("cta-box", b.width, true)
	box.X = b.left
	box.Y = sectionPadding
	sec.AddChild(box)

	heading := b.headingBlock("cta-heading", c.Heading, c.Body)
	heading.X = 0
	heading.Y = 48
	box.AddChild(heading)
	y := heading.Y + heading.Height + 32

	primary := b.button("cta-primary", c.Primary, t.AccentAlt, t.Text)
	secondary := b.button("cta-secondary", c.Secondary, t.Surface, t.Text)
	h := row([]*Node{primary, secondary}, b.width, 16)
	primary.Y, secondary.Y = y, y
	box.AddChild(primary)
	box.AddChild(secondary)
	stretchCard(box, y+h+48)

	sec.Height = box.Y + box.Height + sectionPadding
	b.y += sec.Height
	return box
}

func (b *pageBuilder) footer(c Content) {
	t := b.theme
	f := c.Footer
	sec := NewContainer("footer")
	sec.Y = b.y
	sec.Width = b.vw
	b.scene.root.AddChild(sec)

	rule := NewRect("footer-rule", b.vw, 1, t.Border)
	sec.AddChild(rule)

	cols := len(f.Columns) + 1
	colW := (b.width - t.Gutter*float64(cols-1)) / float64(cols)
	top := 64.0

	brand := b.text("footer-brand", c.Brand+".", 2, t.Text, 0, TextAlignLeft)
	brand.X, brand.Y = b.left, top
	sec.AddChild(brand)
	blurb := b.text("footer-blurb", f.Blurb, 1, t.Muted, colW, TextAlignLeft)
	blurb.X, blurb.Y = b.left, top+brand.Height+12
	sec.AddChild(blurb)
	sx := b.left
	sy := blurb.Y + blurb.Height + 16
	for i, l := range f.Social {
		n := b.text(fmt.Sprintf("footer-social-%d", i), initial(l.Label), 1.5, t.Muted, 0, TextAlignLeft)
		n.Interactable = true
		n.Link = l.Route
		n.X, n.Y = sx, sy
		sec.AddChild(n)
		sx += n.Width + 16
	}
	bottom := sy + 24

	for ci, col := range f.Columns {
		x := b.left + float64(ci+1)*(colW+t.Gutter)
		title := b.text(fmt.Sprintf("footer-col-%d", ci), col.Title, 1.5, t.Text, 0, TextAlignLeft)
		title.X, title.Y = x, top
		sec.AddChild(title)
		y := top + title.Height + 12
		for li, l := range col.Links {
			n := b.text(fmt.Sprintf("footer-col-%d-%d", ci, li), l.Label, 1, t.Muted, colW, TextAlignLeft)
			n.Interactable = true
			n.Link = l.Route
			n.X, n.Y = x, y
			sec.AddChild(n)
			y += n.Height + 8
		}
		bottom = max(bottom, y)
	}

	y := bottom + 32
	copyright := b.text("footer-copyright", fmt.Sprintf("(c) %d %s", time.Now().Year(), f.Copyright), 1, t.Muted, 0, TextAlignLeft)
	copyright.X, copyright.Y = b.left, y
	sec.AddChild(copyright)
	x := b.left + b.width
	for i := len(f.Legal) - 1; i >= 0; i-- {
		n := b.text(fmt.Sprintf("footer-legal-%d", i), f.Legal[i].Label, 1, t.Muted, 0, TextAlignLeft)
		n.Interactable = true
		n.Link = f.Legal[i].Route
		x -= n.Width
		n.X, n.Y = x, y
		sec.AddChild(n)
		x -= 16
	}

	sec.Height = y + copyright.Height + 48
	b.y += sec.Height
}
