package domain

import "image"

// RecoveredImage is an embedded PDF image normalized to RGB for OCR.
type RecoveredImage struct {
	Page   int
	Name   string
	Filter string
	Image  image.Image
}
