package config

import (
	"errors"
	"fmt"
	"time"
)

// LayoutSettings sizes the layered layout, in diagram pixels.
type LayoutSettings struct {
	NodeWidth   float64
	NodeHeight  float64
	NodeSpacing float64
	RankSpacing float64
}

// ViewportSettings drives camera moves.
type ViewportSettings struct {
	Margin    float64
	MinZoom   float64
	MaxZoom   float64
	Animation time.Duration
}

// Layout returns the layout.* keys.
func Layout() LayoutSettings {
	return LayoutSettings{
		NodeWidth:   GetFloat64(KeyLayoutNodeWidth),
		NodeHeight:  GetFloat64(KeyLayoutNodeHeight),
		NodeSpacing: GetFloat64(KeyLayoutNodeSpacing),
		RankSpacing: GetFloat64(KeyLayoutRankSpacing),
	}
}

// Viewport returns the viewport.* keys.
func Viewport() ViewportSettings {
	return ViewportSettings{
		Margin:    GetFloat64(KeyViewportMargin),
		MinZoom:   GetFloat64(KeyViewportMinZoom),
		MaxZoom:   GetFloat64(KeyViewportMaxZoom),
		Animation: time.Duration(GetInt(KeyViewportAnimationMs)) * time.Millisecond,
	}
}

// Validate reports every layout and viewport value that cannot be used.
func Validate() error {
	var errs []error
	l := Layout()
	if l.NodeWidth <= 0 || l.NodeHeight <= 0 {
		errs = append(errs, fmt.Errorf("%s and %s must be positive, got %v and %v", KeyLayoutNodeWidth, KeyLayoutNodeHeight, l.NodeWidth, l.NodeHeight))
	}
	if l.NodeSpacing < 0 || l.RankSpacing < 0 {
		errs = append(errs, fmt.Errorf("%s and %s must not be negative", KeyLayoutNodeSpacing, KeyLayoutRankSpacing))
	}

	vp := Viewport()
	if vp.Margin < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %v", KeyViewportMargin, vp.Margin))
	}
	if vp.MinZoom <= 0 || vp.MinZoom > vp.MaxZoom {
		errs = append(errs, fmt.Errorf("zoom range must satisfy 0 < %s <= %s, got %v..%v", KeyViewportMinZoom, KeyViewportMaxZoom, vp.MinZoom, vp.MaxZoom))
	}
	if vp.Animation < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyViewportAnimationMs))
	}
	return errors.Join(errs...)
}
