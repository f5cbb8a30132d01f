package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/freelancehub/brief-service/internal/brief"
)

func TestRecordPricingCalculation_CollapsesUnknownTypes(t *testing.T) {
	RecordPricingCalculation("zzz-attacker-1")
	RecordPricingCalculation("zzz-attacker-2")
	RecordPricingCalculation("")
	RecordPricingCalculation(brief.ProjectTypeMVP)

	// only known project types exist as label values
	assert.Equal(t, 2, testutil.CollectAndCount(pricingCalculationsTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(pricingCalculationsTotal.WithLabelValues(brief.ProjectTypeLanding)))
	assert.Equal(t, 1.0, testutil.ToFloat64(pricingCalculationsTotal.WithLabelValues(brief.ProjectTypeMVP)))
}
