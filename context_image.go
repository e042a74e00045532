package hwdraw

// Image is an immutable texture-backed image created from a Source. Images
// may be drawn into any context of the same source.
type Image struct {
	source *Source
	tex    *texture
	width  int
	height int
	interp InterpolationMode
}

// MakeImage uploads pixel data into a new image. RGBA data is interpreted
// as premultiplied.
func (s *Source) MakeImage(width, height int, format ImageFormat, data []byte, interp InterpolationMode) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrUnsupported
	}
	if len(data) < width*height*format.Bytes() {
		return nil, backendErr("make image", errShortPixelData)
	}
	tex, err := newTexture(s.ctx, interp, RepeatClamp)
	if err != nil {
		return nil, err
	}
	if err := s.ctx.WriteTexture(tex.id, width, height, format, data); err != nil {
		tex.release()
		return nil, backendErr("make image", err)
	}
	return &Image{
		source: s,
		tex:    tex,
		width:  width,
		height: height,
		interp: interp,
	}, nil
}

// Size returns the image dimensions in pixels.
func (img *Image) Size() (width, height int) {
	return img.width, img.height
}

// Release frees the image's texture. Release is idempotent.
func (img *Image) Release() {
	img.tex.release()
}

// DrawImage draws the whole image with its top-left corner at a point in
// user space, at its natural size.
func (c *Context) DrawImage(img *Image, at Point) {
	w, h := img.Size()
	src := RectFromSize(0, 0, float64(w), float64(h))
	dst := RectFromSize(at.X, at.Y, float64(w), float64(h))
	c.DrawImageArea(img, src, dst, img.interp)
}

// DrawImageArea draws the src rectangle of the image into the dst
// rectangle in user space, resampling with the given interpolation mode.
func (c *Context) DrawImageArea(img *Image, src, dst Rect, interp InterpolationMode) {
	if img == nil || img.tex == nil {
		c.recordErr(ErrUnsupported)
		return
	}
	if src.IsEmpty() || dst.IsEmpty() {
		return
	}
	if interp != img.interp {
		c.ctx.SetTextureInterpolation(img.tex.id, interp)
		img.interp = interp
	}

	// Map user-space (dst) points into image pixel coordinates.
	sx := src.Width() / dst.Width()
	sy := src.Height() / dst.Height()
	dstToSrc := Translate(src.X0, src.Y0).
		Multiply(Scale(sx, sy)).
		Multiply(Translate(-dst.X0, -dst.Y0))

	c.Fill(dst.Path(), ImageBrush{Image: img, Transform: dstToSrc, Interp: interp}, FillRuleNonZero)
}

// CaptureImage would read back a region of the render target into an
// image. Readback is not implemented.
func (c *Context) CaptureImage(region Rect) (*Image, error) {
	return nil, ErrUnimplemented
}

// BlurredRect would draw a rectangle with gaussian-blurred edges. Blur is
// not supported; the call records ErrUnsupported.
func (c *Context) BlurredRect(r Rect, blurRadius float64, brush Brush) {
	c.recordErr(ErrUnsupported)
}
