package convert

import (
	"go.uber.org/zap"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda"
)

// convertSolidRegion drops filled regions
func (c *Converter) convertSolidRegion(easyeda.SolidRegion) Result {
	return newResult(easyeda.KindSolidRegion).skip("solid regions are not converted")
}

// convertVia drops vias with a warning
func (c *Converter) convertVia(easyeda.Via) Result {
	c.logger.Warn("VIA not supported. Vias are often added for better heat dissipation; " +
		"check the datasheet and add them manually if needed")
	return newResult(easyeda.KindVia).skip("vias are not converted")
}

// convertUnsupported skips shapes with an unknown tag
func (c *Converter) convertUnsupported(u easyeda.Unsupported) Result {
	c.logger.Debug("unsupported shape", zap.String("tag", u.Tag))
	return newResult(easyeda.KindUnsupported).skip("unsupported shape " + u.Tag)
}
