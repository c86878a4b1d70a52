package sketch

// Resolution returns the value of the overlay's resolution uniform for a
// viewport: (width, height, a1, a2), where a1 and a2 letterbox an image of
// the given aspect (height/width) into the viewport. Sizes below 1 are
// raised to 1.
func Resolution(width, height int, imageAspect float32) (w, h int, res [4]float32) {
	w, h = max(width, 1), max(height, 1)
	fw, fh := float32(w), float32(h)

	a1, a2 := float32(1), float32(1)
	if fh/fw > imageAspect {
		a1 = (fw / fh) * imageAspect
	} else {
		a2 = (fh / fw) * imageAspect
	}
	return w, h, [4]float32{fw, fh, a1, a2}
}
