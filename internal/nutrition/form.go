package nutrition

// FormFlags tells the consuming form which collapsed breakdown
// sections need to be visible after filling.
type FormFlags struct {
	FatBreakdown  bool
	CarbBreakdown bool
}

var fatBreakdownFields = map[string]struct{}{
	"mettet_fett":      {},
	"enumettet_fett":   {},
	"flerumettet_fett": {},
}

// FormValues maps extracted field kinds onto the named nutrition form
// inputs and reports which breakdown sections they touch.
func FormValues(extracted map[FieldKind]float64) (map[string]float64, FormFlags) {
	values := make(map[string]float64, len(extracted))
	var flags FormFlags
	for kind, v := range extracted {
		spec, ok := specByKind[kind]
		if !ok {
			continue
		}
		values[spec.formField] = v
		if _, fat := fatBreakdownFields[spec.formField]; fat {
			flags.FatBreakdown = true
		}
		if spec.formField == "sukkerarter" {
			flags.CarbBreakdown = true
		}
	}
	return values, flags
}

// FieldKinds lists the recognized kinds in evaluation order.
func FieldKinds() []FieldKind {
	kinds := make([]FieldKind, len(fieldSpecs))
	for i, s := range fieldSpecs {
		kinds[i] = s.kind
	}
	return kinds
}
