package baseline

import (
	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
	"github.com/cocosip/go-jpeg-baseline/raster"
)

// SplitChannels renders the Y, Cb and Cr channels of img as viewable RGB
// images: Y as gray, Cb in the blue channel and Cr in the red channel over
// a neutral 128 background. Channel values are truncated to 0..255.
func SplitChannels(img raster.Image) (y, cb, cr *raster.RGB) {
	w, h := img.Width(), img.Height()
	y = raster.NewFilled(w, h, raster.Pixel{})
	cb = raster.NewFilled(w, h, raster.Pixel{})
	cr = raster.NewFilled(w, h, raster.Pixel{})

	yp, cbp, crp := y.Pixels(), cb.Pixels(), cr.Pixels()
	for i, p := range img.Pixels() {
		yy, cbv, crv := common.RGBToYCbCr(p.R, p.G, p.B)
		Y, Cb, Cr := truncSample(yy), truncSample(cbv), truncSample(crv)
		yp[i] = raster.Pixel{R: Y, G: Y, B: Y}
		cbp[i] = raster.Pixel{R: 128, G: 128, B: Cb}
		crp[i] = raster.Pixel{R: Cr, G: 128, B: 128}
	}
	return y, cb, cr
}

func truncSample(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
