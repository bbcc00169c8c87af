package taxonomy

type Feature struct {
	Key   string
	Label string
}

type FeatureCategory struct {
	Label string
	Items []Feature
}

// FeatureKey maps a checkbox label to a feature key, ignoring case.
func FeatureKey(label string) (string, bool) {
	want := Fold(label)
	if want == "" {
		return "", false
	}
	for _, c := range FeatureCategories {
		for _, f := range c.Items {
			if Fold(f.Label) == want {
				return f.Key, true
			}
		}
	}
	return "", false
}

func FeatureLabel(key string) (string, bool) {
	for _, c := range FeatureCategories {
		for _, f := range c.Items {
			if f.Key == key {
				return f.Label, true
			}
		}
	}
	return "", false
}
