package tui

import "github.com/iWorld-y/ipo_radar/app/console/internal/view"

// Document keeps the frame the next View call draws.
type Document struct {
	frame view.Frame
}

// Apply implements view.Document.
func (d *Document) Apply(f view.Frame) { d.frame = f }

// Frame returns the current frame.
func (d *Document) Frame() view.Frame { return d.frame }
