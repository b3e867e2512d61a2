package overlay

import (
	"fmt"
	"image"
)

// DefaultIconGap spaces the weather icon and temperature: each element's
// left edge sits this many of its own widths left of its right neighbour.
const DefaultIconGap = 1.1

// Kind identifies an overlay element.
type Kind int

const (
	KindDate Kind = iota
	KindTime
	KindTitle
	KindCreationDate
	KindLocation
	KindWeatherIcon
	KindTemperature
)

func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindTitle:
		return "title"
	case KindCreationDate:
		return "creation-date"
	case KindLocation:
		return "location"
	case KindWeatherIcon:
		return "weather-icon"
	case KindTemperature:
		return "temperature"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Element is one placed overlay item. Box is in canvas coordinates with
// the canvas origin at (0, 0); for text it spans the advance width and runs
// from the ascent line to the bottom of the ink.
type Element struct {
	Kind   Kind
	Text   string
	SizePt int
	Icon   image.Image
	Box    image.Rectangle
}

// Content is the text and weather data to lay out on one frame. Empty
// strings are absent and their elements are skipped.
type Content struct {
	Date         string
	Time         string
	Title        string
	CreationDate string
	Location     string
	WeatherCode  string
	Temperature  string
}

// PlaceAll positions every present element. The order is fixed: date,
// time, title, creation date, location, weather icon, temperature. Later
// elements are anchored on earlier ones and never move them.
//
// A placed box always lies inside the grid interior and overlaps no other
// box. An element that cannot be placed that way is left out and its kind
// is returned in skipped; the temperature is skipped with the icon.
// iconGap spaces the weather icon and temperature (see DefaultIconGap).
func PlaceAll(grid Grid, fonts Fonts, icons IconSource, content Content, iconGap float64) (placed []Element, skipped []Kind, err error) {
	p := &placer{grid: grid, fonts: fonts, icons: icons, iconGap: iconGap}

	steps := []func(Content) error{
		p.placeDate,
		p.placeTime,
		p.placeTitle,
		p.placeCreationDate,
		p.placeLocation,
		p.placeWeather,
	}
	for _, step := range steps {
		if err := step(content); err != nil {
			return nil, nil, err
		}
	}
	return p.placed, p.skipped, nil
}

type placer struct {
	grid    Grid
	fonts   Fonts
	icons   IconSource
	iconGap float64
	placed  []Element
	skipped []Kind
}

func (p *placer) find(kind Kind) (Element, bool) {
	for _, e := range p.placed {
		if e.Kind == kind {
			return e, true
		}
	}
	return Element{}, false
}

func (p *placer) measure(text string, sizePt int) (TextSize, error) {
	return p.fonts.Measurer.Measure(text, sizePt)
}

// add keeps e if it fits inside the interior clear of every placed box.
func (p *placer) add(e Element) bool {
	if !e.Box.In(p.grid.Interior()) {
		logDebug("skip %s: %v outside %v", e.Kind, e.Box, p.grid.Interior())
		p.skipped = append(p.skipped, e.Kind)
		return false
	}
	for _, other := range p.placed {
		if e.Box.Overlaps(other.Box) {
			logDebug("skip %s: %v overlaps %s %v", e.Kind, e.Box, other.Kind, other.Box)
			p.skipped = append(p.skipped, e.Kind)
			return false
		}
	}
	p.placed = append(p.placed, e)
	return true
}

func (p *placer) addText(kind Kind, text string, sizePt int, at image.Point, ts TextSize) bool {
	return p.add(Element{
		Kind:   kind,
		Text:   text,
		SizePt: sizePt,
		Box:    image.Rectangle{Min: at, Max: at.Add(image.Pt(ts.Width, ts.Height))},
	})
}

func (p *placer) placeDate(c Content) error {
	if c.Date == "" {
		logDebug("skip %s: empty", KindDate)
		return nil
	}
	size := p.fonts.Base.SizePt
	ts, err := p.measure(c.Date, size)
	if err != nil {
		return err
	}
	p.addText(KindDate, c.Date, size, image.Pt(p.grid.Right()-ts.Width, p.grid.Bottom()-ts.Height), ts)
	return nil
}

func (p *placer) placeTime(c Content) error {
	if c.Time == "" {
		logDebug("skip %s: empty", KindTime)
		return nil
	}
	size := p.fonts.Clock
	ts, err := p.measure(c.Time, size)
	if err != nil {
		return err
	}
	y := p.grid.Bottom() - p.fonts.Row - ts.Height
	if date, ok := p.find(KindDate); ok {
		y = min(y, date.Box.Min.Y-ts.Height)
	}
	p.addText(KindTime, c.Time, size, image.Pt(p.grid.Right()-ts.Width, y), ts)
	return nil
}

func (p *placer) placeTitle(c Content) error {
	if c.Title == "" {
		logDebug("skip %s: absent", KindTitle)
		return nil
	}
	size := p.fonts.Title
	ts, err := p.measure(c.Title, size)
	if err != nil {
		return err
	}
	x := p.grid.Width/2 - ts.Width/2
	p.addText(KindTitle, c.Title, size, image.Pt(x, p.grid.Bottom()-ts.Height), ts)
	return nil
}

func (p *placer) placeCreationDate(c Content) error {
	if c.CreationDate == "" {
		logDebug("skip %s: absent", KindCreationDate)
		return nil
	}
	size := p.fonts.Base.SizePt
	ts, err := p.measure(c.CreationDate, size)
	if err != nil {
		return err
	}
	p.addText(KindCreationDate, c.CreationDate, size, image.Pt(p.grid.Left(), p.grid.Bottom()-p.fonts.Row), ts)
	return nil
}

func (p *placer) placeLocation(c Content) error {
	if c.Location == "" {
		logDebug("skip %s: absent", KindLocation)
		return nil
	}
	size := p.fonts.Base.SizePt
	ts, err := p.measure(c.Location, size)
	if err != nil {
		return err
	}
	y := p.grid.Bottom() - p.fonts.Row - ts.Height
	if created, ok := p.find(KindCreationDate); ok {
		y = min(y, created.Box.Min.Y-ts.Height)
	}
	p.addText(KindLocation, c.Location, size, image.Pt(p.grid.Left(), y), ts)
	return nil
}

// placeWeather places the icon left of the date and the temperature left
// of the icon. The temperature is anchored on the icon, so it is never
// placed alone.
func (p *placer) placeWeather(c Content) error {
	if c.WeatherCode == "" || c.Temperature == "" {
		logDebug("skip %s and %s: no weather", KindWeatherIcon, KindTemperature)
		return nil
	}

	tier := IconTier(p.fonts.Row * 2)
	icon, err := p.icons.Icon(c.WeatherCode, tier)
	if err != nil {
		return err
	}

	iconW, iconH := icon.Bounds().Dx(), icon.Bounds().Dy()
	rightOf := p.grid.Right()
	if date, ok := p.find(KindDate); ok {
		rightOf = date.Box.Min.X
	}
	gap := p.spacing(iconW)
	at := image.Pt(rightOf-gap, p.grid.Bottom()-iconH)
	box := p.clearLeft(image.Rectangle{Min: at, Max: at.Add(image.Pt(iconW, iconH))}, gap-iconW)
	if !p.add(Element{Kind: KindWeatherIcon, Icon: icon, Box: box}) {
		p.skipped = append(p.skipped, KindTemperature)
		return nil
	}

	size := p.fonts.Base.SizePt
	ts, err := p.measure(c.Temperature, size)
	if err != nil {
		return err
	}
	gap = p.spacing(ts.Width)
	at = image.Pt(box.Min.X-gap, p.grid.Bottom()-ts.Height)
	box = p.clearLeft(image.Rectangle{Min: at, Max: at.Add(image.Pt(ts.Width, ts.Height))}, gap-ts.Width)
	p.add(Element{Kind: KindTemperature, Text: c.Temperature, SizePt: size, Box: box})
	return nil
}

// spacing is the distance from a neighbour's left edge to the left edge of
// an element of width w.
func (p *placer) spacing(w int) int {
	return int(p.iconGap * float64(w))
}

// clearLeft slides box left until it intersects nothing already placed,
// leaving gap pixels between its right edge and the element it cleared.
// The result may cross the left border; add rejects it then.
func (p *placer) clearLeft(box image.Rectangle, gap int) image.Rectangle {
	for n := len(p.placed) + 1; n > 0; n-- {
		moved := false
		for _, e := range p.placed {
			if !box.Overlaps(e.Box) {
				continue
			}
			box = box.Sub(image.Pt(box.Max.X-(e.Box.Min.X-gap), 0))
			moved = true
		}
		if !moved {
			break
		}
	}
	return box
}
