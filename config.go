package aevum

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed landing.yaml
var defaultConfigYAML []byte

// Config is the landing page configuration: motion tuning, copy, and theme.
type Config struct {
	Motion  MotionConfig `yaml:"motion"`
	Content Content      `yaml:"content"`
	Theme   Theme        `yaml:"theme"`
}

// MotionConfig tunes every animation mounted on the page.
type MotionConfig struct {
	Hero     HeroMotion              `yaml:"hero"`
	Header   HeaderMotion            `yaml:"header"`
	Features RevealMotion            `yaml:"features"`
	Headings RevealMotion            `yaml:"headings"`
	Sections map[string]RevealMotion `yaml:"sections"`
	Hover    HoverMotion             `yaml:"hover"`
}

// HeroMotion configures the hero: the continuous progress transform, the
// scrubbed title, and the entrance of the remaining hero items.
type HeroMotion struct {
	Progress ProgressMotion `yaml:"progress"`
	Title    TitleMotion    `yaml:"title"`
	Subtitle EntranceMotion `yaml:"subtitle"`
	Actions  EntranceMotion `yaml:"actions"`
	Showcase EntranceMotion `yaml:"showcase"`
}

// ProgressMotion maps global scroll progress onto scale and opacity.
type ProgressMotion struct {
	Domain  Range    `yaml:"domain"`
	Scale   Interval `yaml:"scale"`
	Opacity Interval `yaml:"opacity"`
	Ease    string   `yaml:"ease"`
}

// TitleMotion is a single-step scrub timeline over the hero section's span.
type TitleMotion struct {
	Start SpanAnchor `yaml:"start"`
	End   SpanAnchor `yaml:"end"`
	Range Range      `yaml:"range"`
	To    Style      `yaml:"to"`
	Ease  string     `yaml:"ease"`
}

// HeaderMotion configures the header entrance.
type HeaderMotion struct {
	Bar     EntranceMotion `yaml:"bar"`
	Logo    EntranceMotion `yaml:"logo"`
	Actions EntranceMotion `yaml:"actions"`
	Label   EntranceMotion `yaml:"label"`
}

// EntranceMotion is a one-shot transition played on mount.
type EntranceMotion struct {
	Delay    time.Duration `yaml:"delay"`
	Duration time.Duration `yaml:"duration"`
	Ease     string        `yaml:"ease"`
	From     Style         `yaml:"from"`
	To       Style         `yaml:"to"`
}

// RevealMotion configures a visibility-triggered reveal group.
type RevealMotion struct {
	Threshold float64       `yaml:"threshold"`
	Margin    Insets        `yaml:"margin"`
	Once      bool          `yaml:"once"`
	Stagger   time.Duration `yaml:"stagger"`
	Duration  time.Duration `yaml:"duration"`
	Ease      string        `yaml:"ease"`
	From      Style         `yaml:"from"`
	To        Style         `yaml:"to"`
}

// HoverMotion lifts cards under the pointer.
type HoverMotion struct {
	Duration time.Duration `yaml:"duration"`
	Ease     string        `yaml:"ease"`
	Lift     Style         `yaml:"lift"`
}

// Content is the page copy.
type Content struct {
	Brand        string       `yaml:"brand"`
	Tagline      string       `yaml:"tagline"`
	Primary      Link         `yaml:"primary"`
	Secondary    Link         `yaml:"secondary"`
	Login        Link         `yaml:"login"`
	Nav          []Link       `yaml:"nav"`
	Features     Section      `yaml:"features"`
	Steps        Section      `yaml:"steps"`
	Testimonials Section      `yaml:"testimonials"`
	Pricing      Section      `yaml:"pricing"`
	CTA          CallToAction `yaml:"cta"`
	Footer       Footer       `yaml:"footer"`
}

// Link is a labeled route. Routes starting with "#" are in-page anchors.
type Link struct {
	Label string `yaml:"label"`
	Route string `yaml:"route"`
}

// Section is a heading plus an ordered list of cards.
type Section struct {
	Anchor     string `yaml:"anchor"`
	Heading    string `yaml:"heading"`
	Subheading string `yaml:"subheading"`
	Cards      []Card `yaml:"cards"`
}

// Card is one feature, step, testimonial, or pricing plan.
type Card struct {
	Badge     string   `yaml:"badge"`
	Title     string   `yaml:"title"`
	Meta      string   `yaml:"meta"`
	Body      string   `yaml:"body"`
	Stars     int      `yaml:"stars"`
	Bullets   []string `yaml:"bullets"`
	Highlight bool     `yaml:"highlight"`
	Action    Link     `yaml:"action"`
}

// CallToAction is the closing banner.
type CallToAction struct {
	Anchor    string `yaml:"anchor"`
	Heading   string `yaml:"heading"`
	Body      string `yaml:"body"`
	Primary   Link   `yaml:"primary"`
	Secondary Link   `yaml:"secondary"`
}

// Footer holds the footer blurb and link columns.
type Footer struct {
	Blurb     string         `yaml:"blurb"`
	Social    []Link         `yaml:"social"`
	Columns   []FooterColumn `yaml:"columns"`
	Legal     []Link         `yaml:"legal"`
	Copyright string         `yaml:"copyright"`
}

// FooterColumn is a titled list of links.
type FooterColumn struct {
	Title string `yaml:"title"`
	Links []Link `yaml:"links"`
}

// Theme holds the page's visual tokens.
type Theme struct {
	Background   Color   `yaml:"background"`
	Surface      Color   `yaml:"surface"`
	Border       Color   `yaml:"border"`
	Text         Color   `yaml:"text"`
	Muted        Color   `yaml:"muted"`
	Accent       Color   `yaml:"accent"`
	AccentAlt    Color   `yaml:"accent_alt"`
	Width        float64 `yaml:"width"`
	HeaderHeight float64 `yaml:"header_height"`
	Gutter       float64 `yaml:"gutter"`
}

// UnmarshalYAML decodes a "#rrggbb" style hex string.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseHexColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// UnmarshalYAML decodes a mapping of property names (or aliases such as
// "opacity" and "y") to numbers.
func (s *Style) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]float64
	if err := value.Decode(&raw); err != nil {
		return err
	}
	out := make(Style, len(raw))
	for name, v := range raw {
		p, err := ParseProperty(name)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		out[p] = v
	}
	*s = out
	return nil
}

// MarshalYAML encodes the style with canonical property names.
func (s Style) MarshalYAML() (any, error) {
	out := make(map[string]float64, len(s))
	for p, v := range s {
		out[p.String()] = v
	}
	return out, nil
}

// DefaultConfig returns the embedded default configuration. Each call
// returns a fresh copy.
func DefaultConfig() Config {
	var cfg Config
	if err := decodeConfig(defaultConfigYAML, &cfg); err != nil {
		panic(fmt.Sprintf("aevum: embedded config: %v", err))
	}
	return cfg
}

// LoadConfig decodes data over the defaults and validates the result.
// Unknown keys are rejected. Lists and styles present in data replace the
// defaults; other mappings merge key by key.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) > 0 {
		if err := decodeConfig(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads and decodes a YAML config file. An empty path returns
// the defaults.
func LoadConfigFile(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return LoadConfig(data)
}

func decodeConfig(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}

// Validate checks ranges, thresholds, durations, and easing names. All
// problems are reported together.
func (c Config) Validate() error {
	var errs []error
	add := func(where string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", where, err))
		}
	}

	m := c.Motion
	add("motion.hero.progress.domain", m.Hero.Progress.Domain.Validate())
	add("motion.hero.progress.ease", validEase(m.Hero.Progress.Ease))
	add("motion.hero.title.range", m.Hero.Title.Range.Validate())
	add("motion.hero.title.ease", validEase(m.Hero.Title.Ease))

	entrances := map[string]EntranceMotion{
		"motion.hero.subtitle":  m.Hero.Subtitle,
		"motion.hero.actions":   m.Hero.Actions,
		"motion.hero.showcase":  m.Hero.Showcase,
		"motion.header.bar":     m.Header.Bar,
		"motion.header.logo":    m.Header.Logo,
		"motion.header.actions": m.Header.Actions,
		"motion.header.label":   m.Header.Label,
	}
	for _, name := range sortedKeys(entrances) {
		add(name, entrances[name].validate())
	}

	reveals := map[string]RevealMotion{
		"motion.features": m.Features,
		"motion.headings": m.Headings,
	}
	for name, r := range m.Sections {
		reveals["motion.sections."+name] = r
	}
	for _, name := range sortedKeys(reveals) {
		add(name, reveals[name].validate())
	}

	if m.Hover.Duration < 0 {
		errs = append(errs, errors.New("motion.hover: negative duration"))
	}
	add("motion.hover.ease", validEase(m.Hover.Ease))

	if c.Content.Brand == "" {
		errs = append(errs, errors.New("content.brand: must not be empty"))
	}
	if c.Theme.HeaderHeight <= 0 {
		errs = append(errs, errors.New("theme.header_height: must be positive"))
	}
	if c.Theme.Width <= 0 {
		errs = append(errs, errors.New("theme.width: must be positive"))
	}
	return errors.Join(errs...)
}

func (e EntranceMotion) validate() error {
	if e.Delay < 0 || e.Duration < 0 {
		return fmt.Errorf("negative delay or duration")
	}
	return validEase(e.Ease)
}

func (r RevealMotion) validate() error {
	if r.Threshold <= 0 || r.Threshold > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidThreshold, r.Threshold)
	}
	if r.Stagger < 0 || r.Duration < 0 {
		return fmt.Errorf("negative stagger or duration")
	}
	return validEase(r.Ease)
}

func validEase(name string) error {
	_, err := Ease(name)
	return err
}

// easeOrLinear resolves a validated easing name.
func easeOrLinear(name string) ease.TweenFunc {
	fn, err := Ease(name)
	if err != nil {
		logger.Debug("unknown easing, using linear", zap.String("ease", name))
		return ease.Linear
	}
	return fn
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
