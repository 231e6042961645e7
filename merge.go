package docskema

// Merge overlays a child declaration on its parent schema. It is a pure
// function: neither input is modified.
//
//   - structure: parent fields overlaid by the child per top-level key (a
//     redeclared key replaces the whole subtree); new keys are appended
//   - required and i18n: union, parent first
//   - defaults and validators: parent map overlaid by the child per path;
//     predicate lists are replaced, never concatenated
//   - authorized types: the child's when set, else the parent's
//   - options: flags are OR-ed, reserved keys unioned
func Merge(parent *Schema, child Declaration) Declaration {
	if parent == nil {
		return child
	}
	base := parent.declaration()
	out := Declaration{Name: child.Name}

	out.Structure = &Nested{Fields: append([]Field(nil), base.Structure.Fields...)}
	if child.Structure != nil {
		for _, f := range child.Structure.Fields {
			replaced := false
			for i := range out.Structure.Fields {
				if out.Structure.Fields[i].Name == f.Name {
					out.Structure.Fields[i] = f
					replaced = true
					break
				}
			}
			if !replaced {
				out.Structure.Fields = append(out.Structure.Fields, f)
			}
		}
	}

	out.Required = dedupe(append(append([]string(nil), base.Required...), child.Required...))
	out.I18n = dedupe(append(append([]string(nil), base.I18n...), child.I18n...))

	out.Defaults = base.Defaults
	for p, d := range child.Defaults {
		out.Defaults[p] = d
	}
	out.Validators = base.Validators
	for p, vs := range child.Validators {
		out.Validators[p] = append([]Validator(nil), vs...)
	}

	out.AuthorizedTypes = base.AuthorizedTypes
	if child.AuthorizedTypes != nil {
		out.AuthorizedTypes = child.AuthorizedTypes
	}

	out.Options = Options{
		Schemaless: base.Options.Schemaless || child.Options.Schemaless,
		Accumulate: base.Options.Accumulate || child.Options.Accumulate,
	}
	if base.Options.ReservedKeys != nil || child.Options.ReservedKeys != nil {
		out.Options.ReservedKeys = dedupe(append(append([]string(nil), base.Options.ReservedKeys...), child.Options.ReservedKeys...))
	}
	return out
}
