package classfile

import "github.com/go-jclass/jclass/internal/cursor"

// resolveAttributes implements spec §4.3's attribute-resolve phase: walk
// every attribute in the tree — top-level, per-field, per-method, and
// (recursively) the attributes nested inside Code and Record — and rewrite
// each from UnknownAttribute to its concrete variant.
func resolveAttributes(cf *ClassFile, opts *Options) error {
	if err := resolveAttributeList(cf.Attributes, cf.ConstantPool, opts); err != nil {
		return err
	}
	for i := range cf.Fields {
		if err := resolveAttributeList(cf.Fields[i].Attributes, cf.ConstantPool, opts); err != nil {
			return err
		}
	}
	for i := range cf.Methods {
		if err := resolveAttributeList(cf.Methods[i].Attributes, cf.ConstantPool, opts); err != nil {
			return err
		}
	}
	return nil
}

// resolveAttributeList resolves every attribute in attrs in place, and
// recurses into nested attribute tables (Code's own attributes, each
// Record component's attributes) so P7 holds arbitrarily deep.
func resolveAttributeList(attrs []AttributeInfo, pool *ConstantPool, opts *Options) error {
	for i := range attrs {
		resolved, err := resolveAttribute(attrs[i], pool, opts)
		if err != nil {
			return err
		}
		attrs[i].Body = resolved

		switch body := resolved.(type) {
		case CodeAttribute:
			if err := resolveAttributeList(body.Attributes, pool, opts); err != nil {
				return err
			}
		case RecordAttribute:
			for j := range body.Components {
				if err := resolveAttributeList(body.Components[j].Attributes, pool, opts); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// resolveAttribute decodes one attribute's raw payload into its concrete
// variant, looking up the variant by the attribute's name string. A
// failure to resolve the name itself aborts the parse eagerly, per spec
// §7's propagation policy.
func resolveAttribute(attr AttributeInfo, pool *ConstantPool, opts *Options) (AttributeBody, error) {
	nameEntry, err := attr.Name.Resolve(pool)
	if err != nil {
		return nil, err
	}
	name := nameEntry.Value

	unknown, _ := attr.Body.(UnknownAttribute)
	c := cursor.New(unknown.Raw)

	switch name {
	case "ConstantValue":
		return parseConstantValueAttribute(c)
	case "Code":
		return parseCodeAttribute(c)
	case "StackMapTable":
		return parseStackMapTable(c)
	case "Exceptions":
		return parseExceptionsAttribute(c)
	case "InnerClasses":
		return parseInnerClassesAttribute(c)
	case "EnclosingMethod":
		return parseEnclosingMethodAttribute(c)
	case "Synthetic":
		return SyntheticAttribute{}, nil
	case "Deprecated":
		return DeprecatedAttribute{}, nil
	case "Signature":
		return parseSignatureAttribute(c)
	case "SourceFile":
		return parseSourceFileAttribute(c)
	case "SourceDebugExtension":
		return SourceDebugExtensionAttribute{DebugExtension: unknown.Raw}, nil
	case "LineNumberTable":
		return parseLineNumberTableAttribute(c)
	case "LocalVariableTable":
		return parseLocalVariableTableAttribute(c)
	case "LocalVariableTypeTable":
		return parseLocalVariableTypeTableAttribute(c)
	case "RuntimeVisibleAnnotations":
		anns, err := parseAnnotations(c, opts)
		if err != nil {
			return nil, err
		}
		return RuntimeVisibleAnnotationsAttribute{Annotations: anns}, nil
	case "RuntimeInvisibleAnnotations":
		anns, err := parseAnnotations(c, opts)
		if err != nil {
			return nil, err
		}
		return RuntimeInvisibleAnnotationsAttribute{Annotations: anns}, nil
	case "RuntimeVisibleParameterAnnotations":
		ps, err := parseParameterAnnotations(c, opts)
		if err != nil {
			return nil, err
		}
		return RuntimeVisibleParameterAnnotationsAttribute{Parameters: ps}, nil
	case "RuntimeInvisibleParameterAnnotations":
		ps, err := parseParameterAnnotations(c, opts)
		if err != nil {
			return nil, err
		}
		return RuntimeInvisibleParameterAnnotationsAttribute{Parameters: ps}, nil
	case "AnnotationDefault":
		v, err := parseElementValue(c, opts, 0)
		if err != nil {
			return nil, err
		}
		return AnnotationDefaultAttribute{Value: v}, nil
	case "BootstrapMethods":
		return parseBootstrapMethodsAttribute(c)
	case "MethodParameters":
		return parseMethodParametersAttribute(c)
	case "Module":
		return parseModuleAttribute(c)
	case "ModulePackages":
		return parseModulePackagesAttribute(c)
	case "ModuleMainClass":
		return parseModuleMainClassAttribute(c)
	case "NestHost":
		return parseNestHostAttribute(c)
	case "NestMembers":
		return parseNestMembersAttribute(c)
	case "Record":
		return parseRecordAttribute(c)
	default:
		if opts.permissiveAttributes() {
			opts.helper().Debugf("keeping attribute %q unresolved (permissive mode)", name)
			return unknown, nil
		}
		return nil, errUnknownAttributeName(name)
	}
}

func parseConstantValueAttribute(c *cursor.Cursor) (ConstantValueAttribute, error) {
	idx, err := c.U2()
	if err != nil {
		return ConstantValueAttribute{}, err
	}
	return ConstantValueAttribute{Value: PoolRef[PoolEntry]{Index: idx}}, nil
}

// parseCodeAttribute decodes a Code attribute's fixed fields and captures
// its nested attribute table raw; resolveAttributeList resolves that table
// in the same pass that resolves this one (P7).
func parseCodeAttribute(c *cursor.Cursor) (CodeAttribute, error) {
	maxStack, err := c.U2()
	if err != nil {
		return CodeAttribute{}, err
	}
	maxLocals, err := c.U2()
	if err != nil {
		return CodeAttribute{}, err
	}
	codeLength, err := c.U4()
	if err != nil {
		return CodeAttribute{}, err
	}
	code, err := c.Bytes(codeLength)
	if err != nil {
		return CodeAttribute{}, err
	}
	excCount, err := c.U2()
	if err != nil {
		return CodeAttribute{}, err
	}
	exc := make([]ExceptionTableEntry, excCount)
	for i := range exc {
		startPC, err := c.U2()
		if err != nil {
			return CodeAttribute{}, err
		}
		endPC, err := c.U2()
		if err != nil {
			return CodeAttribute{}, err
		}
		handlerPC, err := c.U2()
		if err != nil {
			return CodeAttribute{}, err
		}
		catchIdx, err := c.U2()
		if err != nil {
			return CodeAttribute{}, err
		}
		exc[i] = ExceptionTableEntry{
			StartPC:   startPC,
			EndPC:     endPC,
			HandlerPC: handlerPC,
			CatchType: OptionalPoolRef[ClassInfo]{Index: catchIdx},
		}
	}
	attrs, err := parseAttributeList(c)
	if err != nil {
		return CodeAttribute{}, err
	}
	return CodeAttribute{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Code:           code,
		ExceptionTable: exc,
		Attributes:     attrs,
	}, nil
}

func parseExceptionsAttribute(c *cursor.Cursor) (ExceptionsAttribute, error) {
	count, err := c.U2()
	if err != nil {
		return ExceptionsAttribute{}, err
	}
	out := make([]PoolRef[ClassInfo], count)
	for i := range out {
		idx, err := c.U2()
		if err != nil {
			return ExceptionsAttribute{}, err
		}
		out[i] = PoolRef[ClassInfo]{Index: idx}
	}
	return ExceptionsAttribute{Exceptions: out}, nil
}

func parseInnerClassesAttribute(c *cursor.Cursor) (InnerClassesAttribute, error) {
	count, err := c.U2()
	if err != nil {
		return InnerClassesAttribute{}, err
	}
	out := make([]InnerClassEntry, count)
	for i := range out {
		innerIdx, err := c.U2()
		if err != nil {
			return InnerClassesAttribute{}, err
		}
		outerIdx, err := c.U2()
		if err != nil {
			return InnerClassesAttribute{}, err
		}
		nameIdx, err := c.U2()
		if err != nil {
			return InnerClassesAttribute{}, err
		}
		flags, err := c.U2()
		if err != nil {
			return InnerClassesAttribute{}, err
		}
		out[i] = InnerClassEntry{
			InnerClass:  PoolRef[ClassInfo]{Index: innerIdx},
			OuterClass:  OptionalPoolRef[ClassInfo]{Index: outerIdx},
			InnerName:   OptionalPoolRef[Utf8Info]{Index: nameIdx},
			AccessFlags: NestedClassAccessFlags(flags),
		}
	}
	return InnerClassesAttribute{Classes: out}, nil
}

func parseEnclosingMethodAttribute(c *cursor.Cursor) (EnclosingMethodAttribute, error) {
	classIdx, err := c.U2()
	if err != nil {
		return EnclosingMethodAttribute{}, err
	}
	methodIdx, err := c.U2()
	if err != nil {
		return EnclosingMethodAttribute{}, err
	}
	return EnclosingMethodAttribute{
		Class:  PoolRef[ClassInfo]{Index: classIdx},
		Method: OptionalPoolRef[NameAndTypeInfo]{Index: methodIdx},
	}, nil
}

func parseSignatureAttribute(c *cursor.Cursor) (SignatureAttribute, error) {
	idx, err := c.U2()
	if err != nil {
		return SignatureAttribute{}, err
	}
	return SignatureAttribute{Signature: PoolRef[Utf8Info]{Index: idx}}, nil
}

func parseSourceFileAttribute(c *cursor.Cursor) (SourceFileAttribute, error) {
	idx, err := c.U2()
	if err != nil {
		return SourceFileAttribute{}, err
	}
	return SourceFileAttribute{SourceFile: PoolRef[Utf8Info]{Index: idx}}, nil
}

func parseLineNumberTableAttribute(c *cursor.Cursor) (LineNumberTableAttribute, error) {
	count, err := c.U2()
	if err != nil {
		return LineNumberTableAttribute{}, err
	}
	out := make([]LineNumberEntry, count)
	for i := range out {
		startPC, err := c.U2()
		if err != nil {
			return LineNumberTableAttribute{}, err
		}
		lineNumber, err := c.U2()
		if err != nil {
			return LineNumberTableAttribute{}, err
		}
		out[i] = LineNumberEntry{StartPC: startPC, LineNumber: lineNumber}
	}
	return LineNumberTableAttribute{Entries: out}, nil
}

func parseLocalVariableTableAttribute(c *cursor.Cursor) (LocalVariableTableAttribute, error) {
	count, err := c.U2()
	if err != nil {
		return LocalVariableTableAttribute{}, err
	}
	out := make([]LocalVariableEntry, count)
	for i := range out {
		startPC, err := c.U2()
		if err != nil {
			return LocalVariableTableAttribute{}, err
		}
		length, err := c.U2()
		if err != nil {
			return LocalVariableTableAttribute{}, err
		}
		nameIdx, err := c.U2()
		if err != nil {
			return LocalVariableTableAttribute{}, err
		}
		descIdx, err := c.U2()
		if err != nil {
			return LocalVariableTableAttribute{}, err
		}
		index, err := c.U2()
		if err != nil {
			return LocalVariableTableAttribute{}, err
		}
		out[i] = LocalVariableEntry{
			StartPC:    startPC,
			Length:     length,
			Name:       PoolRef[Utf8Info]{Index: nameIdx},
			Descriptor: PoolRef[Utf8Info]{Index: descIdx},
			Index:      index,
		}
	}
	return LocalVariableTableAttribute{Entries: out}, nil
}

func parseLocalVariableTypeTableAttribute(c *cursor.Cursor) (LocalVariableTypeTableAttribute, error) {
	count, err := c.U2()
	if err != nil {
		return LocalVariableTypeTableAttribute{}, err
	}
	out := make([]LocalVariableTypeEntry, count)
	for i := range out {
		startPC, err := c.U2()
		if err != nil {
			return LocalVariableTypeTableAttribute{}, err
		}
		length, err := c.U2()
		if err != nil {
			return LocalVariableTypeTableAttribute{}, err
		}
		nameIdx, err := c.U2()
		if err != nil {
			return LocalVariableTypeTableAttribute{}, err
		}
		sigIdx, err := c.U2()
		if err != nil {
			return LocalVariableTypeTableAttribute{}, err
		}
		index, err := c.U2()
		if err != nil {
			return LocalVariableTypeTableAttribute{}, err
		}
		out[i] = LocalVariableTypeEntry{
			StartPC:   startPC,
			Length:    length,
			Name:      PoolRef[Utf8Info]{Index: nameIdx},
			Signature: PoolRef[Utf8Info]{Index: sigIdx},
			Index:     index,
		}
	}
	return LocalVariableTypeTableAttribute{Entries: out}, nil
}

func parseBootstrapMethodsAttribute(c *cursor.Cursor) (BootstrapMethodsAttribute, error) {
	count, err := c.U2()
	if err != nil {
		return BootstrapMethodsAttribute{}, err
	}
	methods := make([]BootstrapMethod, count)
	for i := range methods {
		methodIdx, err := c.U2()
		if err != nil {
			return BootstrapMethodsAttribute{}, err
		}
		argCount, err := c.U2()
		if err != nil {
			return BootstrapMethodsAttribute{}, err
		}
		args := make([]PoolRef[PoolEntry], argCount)
		for j := range args {
			argIdx, err := c.U2()
			if err != nil {
				return BootstrapMethodsAttribute{}, err
			}
			args[j] = PoolRef[PoolEntry]{Index: argIdx}
		}
		methods[i] = BootstrapMethod{
			Method:    PoolRef[MethodHandleInfo]{Index: methodIdx},
			Arguments: args,
		}
	}
	return BootstrapMethodsAttribute{Methods: methods}, nil
}

// parseMethodParametersAttribute decodes MethodParameters, whose count is
// a single byte (unlike almost every other attribute's u2 count), per
// JVMS 4.7.24.
func parseMethodParametersAttribute(c *cursor.Cursor) (MethodParametersAttribute, error) {
	count, err := c.U1()
	if err != nil {
		return MethodParametersAttribute{}, err
	}
	out := make([]MethodParameter, count)
	for i := range out {
		nameIdx, err := c.U2()
		if err != nil {
			return MethodParametersAttribute{}, err
		}
		flags, err := c.U2()
		if err != nil {
			return MethodParametersAttribute{}, err
		}
		out[i] = MethodParameter{Name: OptionalPoolRef[Utf8Info]{Index: nameIdx}, AccessFlags: flags}
	}
	return MethodParametersAttribute{Parameters: out}, nil
}

func parseModuleAttribute(c *cursor.Cursor) (ModuleAttribute, error) {
	nameIdx, err := c.U2()
	if err != nil {
		return ModuleAttribute{}, err
	}
	flags, err := c.U2()
	if err != nil {
		return ModuleAttribute{}, err
	}
	versionIdx, err := c.U2()
	if err != nil {
		return ModuleAttribute{}, err
	}

	mod := ModuleAttribute{
		Name:    PoolRef[ModuleInfo]{Index: nameIdx},
		Flags:   flags,
		Version: OptionalPoolRef[Utf8Info]{Index: versionIdx},
	}

	requiresCount, err := c.U2()
	if err != nil {
		return ModuleAttribute{}, err
	}
	mod.Requires = make([]ModuleRequires, requiresCount)
	for i := range mod.Requires {
		modIdx, err := c.U2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		reqFlags, err := c.U2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		reqVersionIdx, err := c.U2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		mod.Requires[i] = ModuleRequires{
			Module:  PoolRef[ModuleInfo]{Index: modIdx},
			Flags:   reqFlags,
			Version: OptionalPoolRef[Utf8Info]{Index: reqVersionIdx},
		}
	}

	exportsCount, err := c.U2()
	if err != nil {
		return ModuleAttribute{}, err
	}
	mod.Exports = make([]ModuleExports, exportsCount)
	for i := range mod.Exports {
		pkgIdx, err := c.U2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		expFlags, err := c.U2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		toCount, err := c.U2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		to := make([]PoolRef[ModuleInfo], toCount)
		for j := range to {
			toIdx, err := c.U2()
			if err != nil {
				return ModuleAttribute{}, err
			}
			to[j] = PoolRef[ModuleInfo]{Index: toIdx}
		}
		mod.Exports[i] = ModuleExports{Package: PoolRef[PackageInfo]{Index: pkgIdx}, Flags: expFlags, To: to}
	}

	opensCount, err := c.U2()
	if err != nil {
		return ModuleAttribute{}, err
	}
	mod.Opens = make([]ModuleOpens, opensCount)
	for i := range mod.Opens {
		pkgIdx, err := c.U2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		openFlags, err := c.U2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		toCount, err := c.U2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		to := make([]PoolRef[ModuleInfo], toCount)
		for j := range to {
			toIdx, err := c.U2()
			if err != nil {
				return ModuleAttribute{}, err
			}
			to[j] = PoolRef[ModuleInfo]{Index: toIdx}
		}
		mod.Opens[i] = ModuleOpens{Package: PoolRef[PackageInfo]{Index: pkgIdx}, Flags: openFlags, To: to}
	}

	usesCount, err := c.U2()
	if err != nil {
		return ModuleAttribute{}, err
	}
	mod.Uses = make([]PoolRef[ClassInfo], usesCount)
	for i := range mod.Uses {
		idx, err := c.U2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		mod.Uses[i] = PoolRef[ClassInfo]{Index: idx}
	}

	providesCount, err := c.U2()
	if err != nil {
		return ModuleAttribute{}, err
	}
	mod.Provides = make([]ModuleProvides, providesCount)
	for i := range mod.Provides {
		serviceIdx, err := c.U2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		withCount, err := c.U2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		with := make([]PoolRef[ClassInfo], withCount)
		for j := range with {
			idx, err := c.U2()
			if err != nil {
				return ModuleAttribute{}, err
			}
			with[j] = PoolRef[ClassInfo]{Index: idx}
		}
		mod.Provides[i] = ModuleProvides{Service: PoolRef[ClassInfo]{Index: serviceIdx}, Implementations: with}
	}

	return mod, nil
}

func parseModulePackagesAttribute(c *cursor.Cursor) (ModulePackagesAttribute, error) {
	count, err := c.U2()
	if err != nil {
		return ModulePackagesAttribute{}, err
	}
	out := make([]PoolRef[PackageInfo], count)
	for i := range out {
		idx, err := c.U2()
		if err != nil {
			return ModulePackagesAttribute{}, err
		}
		out[i] = PoolRef[PackageInfo]{Index: idx}
	}
	return ModulePackagesAttribute{Packages: out}, nil
}

func parseModuleMainClassAttribute(c *cursor.Cursor) (ModuleMainClassAttribute, error) {
	idx, err := c.U2()
	if err != nil {
		return ModuleMainClassAttribute{}, err
	}
	return ModuleMainClassAttribute{MainClass: PoolRef[ClassInfo]{Index: idx}}, nil
}

func parseNestHostAttribute(c *cursor.Cursor) (NestHostAttribute, error) {
	idx, err := c.U2()
	if err != nil {
		return NestHostAttribute{}, err
	}
	return NestHostAttribute{HostClass: PoolRef[ClassInfo]{Index: idx}}, nil
}

func parseNestMembersAttribute(c *cursor.Cursor) (NestMembersAttribute, error) {
	count, err := c.U2()
	if err != nil {
		return NestMembersAttribute{}, err
	}
	out := make([]PoolRef[ClassInfo], count)
	for i := range out {
		idx, err := c.U2()
		if err != nil {
			return NestMembersAttribute{}, err
		}
		out[i] = PoolRef[ClassInfo]{Index: idx}
	}
	return NestMembersAttribute{Classes: out}, nil
}

// parseRecordAttribute captures each component's own attribute table raw;
// resolveAttributeList resolves those tables in the same pass it resolves
// this one.
func parseRecordAttribute(c *cursor.Cursor) (RecordAttribute, error) {
	count, err := c.U2()
	if err != nil {
		return RecordAttribute{}, err
	}
	out := make([]RecordComponent, count)
	for i := range out {
		nameIdx, err := c.U2()
		if err != nil {
			return RecordAttribute{}, err
		}
		descIdx, err := c.U2()
		if err != nil {
			return RecordAttribute{}, err
		}
		attrs, err := parseAttributeList(c)
		if err != nil {
			return RecordAttribute{}, err
		}
		out[i] = RecordComponent{
			Name:       PoolRef[Utf8Info]{Index: nameIdx},
			Descriptor: PoolRef[Utf8Info]{Index: descIdx},
			Attributes: attrs,
		}
	}
	return RecordAttribute{Components: out}, nil
}
