package object

// Typed accessors mirror datapack's get<T>()/get_if<T>(). Go has no
// variant-indexed template, so each scalar kind gets its own pair of
// methods instead of one generic Get[T].

func (o ConstObject) GetInt() (int64, error) {
	v := o.n().value
	if v.Kind != Int {
		return 0, newError(ErrKindMismatch, "get int: node is %s", v.Kind)
	}
	return v.Int, nil
}

func (o ConstObject) GetIntIf() (int64, bool) {
	v := o.n().value
	return v.Int, v.Kind == Int
}

func (o ConstObject) GetFloat() (float64, error) {
	v := o.n().value
	if v.Kind != Float {
		return 0, newError(ErrKindMismatch, "get float: node is %s", v.Kind)
	}
	return v.Float, nil
}

func (o ConstObject) GetFloatIf() (float64, bool) {
	v := o.n().value
	return v.Float, v.Kind == Float
}

func (o ConstObject) GetBool() (bool, error) {
	v := o.n().value
	if v.Kind != Bool {
		return false, newError(ErrKindMismatch, "get bool: node is %s", v.Kind)
	}
	return v.Bool, nil
}

func (o ConstObject) GetBoolIf() (bool, bool) {
	v := o.n().value
	return v.Bool, v.Kind == Bool
}

func (o ConstObject) GetString() (string, error) {
	v := o.n().value
	if v.Kind != String {
		return "", newError(ErrKindMismatch, "get string: node is %s", v.Kind)
	}
	return v.Str, nil
}

func (o ConstObject) GetStringIf() (string, bool) {
	v := o.n().value
	return v.Str, v.Kind == String
}

func (o ConstObject) GetBinary() ([]byte, error) {
	v := o.n().value
	if v.Kind != Binary {
		return nil, newError(ErrKindMismatch, "get binary: node is %s", v.Kind)
	}
	return v.Bin, nil
}

func (o ConstObject) GetBinaryIf() ([]byte, bool) {
	v := o.n().value
	return v.Bin, v.Kind == Binary
}
