package classfile

import (
	"math"

	"github.com/go-jclass/jclass/internal/cursor"
)

// Parse decodes a complete class file from data and returns a fully
// resolved ClassFile, or the first error encountered. It implements the
// three structural passes of spec §4.3 (header, constant pool, bodies)
// followed by the attribute-resolve phase; no partial result is ever
// returned alongside an error.
func Parse(data []byte, opts *Options) (*ClassFile, error) {
	log := opts.helper()
	c := cursor.New(data)

	magic, minor, major, err := parseHeader(c)
	if err != nil {
		return nil, err
	}

	pool, err := parseConstantPool(c)
	if err != nil {
		return nil, err
	}

	cf := &ClassFile{
		Magic:        magic,
		MinorVersion: minor,
		MajorVersion: major,
		ConstantPool: pool,
	}

	if err := parseBody(c, cf); err != nil {
		return nil, err
	}

	if err := resolveAttributes(cf, opts); err != nil {
		return nil, err
	}

	log.Debugf("parsed class file: major=%d minor=%d pool_len=%d fields=%d methods=%d",
		major, minor, pool.Len(), len(cf.Fields), len(cf.Methods))
	return cf, nil
}

func parseHeader(c *cursor.Cursor) (magic uint32, minor, major uint16, err error) {
	magic, err = c.U4()
	if err != nil {
		return
	}
	if magic != Magic {
		err = ErrBadMagic
		return
	}
	minor, err = c.U2()
	if err != nil {
		return
	}
	major, err = c.U2()
	return
}

// parseConstantPool implements spec §4.3 pass 2: read the on-wire count N,
// then decode N-1 logical entries, remembering that Long and Double each
// consume two logical slots (the slot immediately after is a reservedEntry,
// never itself decoded). See spec §9's "Double/Long ghost slot" design note.
func parseConstantPool(c *cursor.Cursor) (*ConstantPool, error) {
	count, err := c.U2()
	if err != nil {
		return nil, err
	}
	pool := &ConstantPool{entries: make([]PoolEntry, count)}
	for i := uint16(1); i < count; {
		entry, wide, err := parseConstantPoolEntry(c)
		if err != nil {
			return nil, err
		}
		pool.entries[i] = entry
		if wide {
			if i+1 < count {
				pool.entries[i+1] = reservedEntry{}
			}
			i += 2
		} else {
			i++
		}
	}
	return pool, nil
}

// parseConstantPoolEntry decodes one tagged constant pool entry, per the
// table in spec §3. wide reports whether the entry occupies two logical
// slots (Long, Double).
func parseConstantPoolEntry(c *cursor.Cursor) (entry PoolEntry, wide bool, err error) {
	tagByte, err := c.U1()
	if err != nil {
		return nil, false, err
	}

	switch PoolTag(tagByte) {
	case TagUtf8:
		length, err := c.U2()
		if err != nil {
			return nil, false, err
		}
		raw, err := c.Bytes(uint32(length))
		if err != nil {
			return nil, false, err
		}
		s, err := decodeUTF8(raw)
		if err != nil {
			return nil, false, err
		}
		return Utf8Info{Value: s}, false, nil

	case TagInteger:
		v, err := c.U4()
		if err != nil {
			return nil, false, err
		}
		return IntegerInfo{Value: int32(v)}, false, nil

	case TagFloat:
		v, err := c.U4()
		if err != nil {
			return nil, false, err
		}
		return FloatInfo{Value: math.Float32frombits(v)}, false, nil

	case TagLong:
		hi, err := c.U4()
		if err != nil {
			return nil, false, err
		}
		lo, err := c.U4()
		if err != nil {
			return nil, false, err
		}
		return LongInfo{Value: int64(uint64(hi)<<32 | uint64(lo))}, true, nil

	case TagDouble:
		hi, err := c.U4()
		if err != nil {
			return nil, false, err
		}
		lo, err := c.U4()
		if err != nil {
			return nil, false, err
		}
		return DoubleInfo{Value: math.Float64frombits(uint64(hi)<<32 | uint64(lo))}, true, nil

	case TagClass:
		idx, err := c.U2()
		if err != nil {
			return nil, false, err
		}
		return ClassInfo{Name: PoolRef[Utf8Info]{Index: idx}}, false, nil

	case TagString:
		idx, err := c.U2()
		if err != nil {
			return nil, false, err
		}
		return StringInfo{Value: PoolRef[Utf8Info]{Index: idx}}, false, nil

	case TagFieldref:
		classIdx, ntIdx, err := parseRefPair(c)
		if err != nil {
			return nil, false, err
		}
		return FieldrefInfo{Class: PoolRef[ClassInfo]{Index: classIdx}, NameAndType: PoolRef[NameAndTypeInfo]{Index: ntIdx}}, false, nil

	case TagMethodref:
		classIdx, ntIdx, err := parseRefPair(c)
		if err != nil {
			return nil, false, err
		}
		return MethodrefInfo{Class: PoolRef[ClassInfo]{Index: classIdx}, NameAndType: PoolRef[NameAndTypeInfo]{Index: ntIdx}}, false, nil

	case TagInterfaceMethodref:
		classIdx, ntIdx, err := parseRefPair(c)
		if err != nil {
			return nil, false, err
		}
		return InterfaceMethodrefInfo{Class: PoolRef[ClassInfo]{Index: classIdx}, NameAndType: PoolRef[NameAndTypeInfo]{Index: ntIdx}}, false, nil

	case TagNameAndType:
		nameIdx, descIdx, err := parseRefPair(c)
		if err != nil {
			return nil, false, err
		}
		return NameAndTypeInfo{Name: PoolRef[Utf8Info]{Index: nameIdx}, Descriptor: PoolRef[Utf8Info]{Index: descIdx}}, false, nil

	case TagMethodHandle:
		kindByte, err := c.U1()
		if err != nil {
			return nil, false, err
		}
		kind := MethodHandleKind(kindByte)
		if !kind.valid() {
			return nil, false, errBadMethodHandleKind(kindByte)
		}
		refIdx, err := c.U2()
		if err != nil {
			return nil, false, err
		}
		return MethodHandleInfo{Kind: kind, Reference: PoolRef[PoolEntry]{Index: refIdx}}, false, nil

	case TagMethodType:
		descIdx, err := c.U2()
		if err != nil {
			return nil, false, err
		}
		return MethodTypeInfo{Descriptor: PoolRef[Utf8Info]{Index: descIdx}}, false, nil

	case TagDynamic:
		bmIdx, ntIdx, err := parseRefPair(c)
		if err != nil {
			return nil, false, err
		}
		return DynamicInfo{BootstrapMethodAttrIndex: bmIdx, NameAndType: PoolRef[NameAndTypeInfo]{Index: ntIdx}}, false, nil

	case TagInvokeDynamic:
		bmIdx, ntIdx, err := parseRefPair(c)
		if err != nil {
			return nil, false, err
		}
		return InvokeDynamicInfo{BootstrapMethodAttrIndex: bmIdx, NameAndType: PoolRef[NameAndTypeInfo]{Index: ntIdx}}, false, nil

	case TagModule:
		idx, err := c.U2()
		if err != nil {
			return nil, false, err
		}
		return ModuleInfo{Name: PoolRef[Utf8Info]{Index: idx}}, false, nil

	case TagPackage:
		idx, err := c.U2()
		if err != nil {
			return nil, false, err
		}
		return PackageInfo{Name: PoolRef[Utf8Info]{Index: idx}}, false, nil

	default:
		return nil, false, errUnknownPoolTag(tagByte)
	}
}

// parseRefPair reads the two u2 fields shared by every "ref, ref" shaped
// constant pool entry (Fieldref/Methodref/InterfaceMethodref/NameAndType/
// Dynamic/InvokeDynamic).
func parseRefPair(c *cursor.Cursor) (first, second uint16, err error) {
	first, err = c.U2()
	if err != nil {
		return
	}
	second, err = c.U2()
	return
}

// parseBody implements spec §4.3 pass 3: access flags, this_class,
// super_class, interfaces, fields, methods, and the class's own
// attributes. Field/method/attribute bodies are captured raw here;
// resolution happens afterward in resolveAttributes.
func parseBody(c *cursor.Cursor, cf *ClassFile) error {
	flags, err := c.U2()
	if err != nil {
		return err
	}
	cf.AccessFlags = ClassAccessFlags(flags)

	thisIdx, err := c.U2()
	if err != nil {
		return err
	}
	cf.ThisClass = PoolRef[ClassInfo]{Index: thisIdx}

	superIdx, err := c.U2()
	if err != nil {
		return err
	}
	cf.SuperClass = OptionalPoolRef[ClassInfo]{Index: superIdx}

	ifaceCount, err := c.U2()
	if err != nil {
		return err
	}
	cf.Interfaces = make([]PoolRef[ClassInfo], ifaceCount)
	for i := range cf.Interfaces {
		idx, err := c.U2()
		if err != nil {
			return err
		}
		cf.Interfaces[i] = PoolRef[ClassInfo]{Index: idx}
	}

	fieldCount, err := c.U2()
	if err != nil {
		return err
	}
	cf.Fields = make([]FieldInfo, fieldCount)
	for i := range cf.Fields {
		fi, err := parseFieldInfo(c)
		if err != nil {
			return err
		}
		cf.Fields[i] = fi
	}

	methodCount, err := c.U2()
	if err != nil {
		return err
	}
	cf.Methods = make([]MethodInfo, methodCount)
	for i := range cf.Methods {
		mi, err := parseMethodInfo(c)
		if err != nil {
			return err
		}
		cf.Methods[i] = mi
	}

	attrs, err := parseAttributeList(c)
	if err != nil {
		return err
	}
	cf.Attributes = attrs
	return nil
}

func parseFieldInfo(c *cursor.Cursor) (FieldInfo, error) {
	flags, err := c.U2()
	if err != nil {
		return FieldInfo{}, err
	}
	nameIdx, err := c.U2()
	if err != nil {
		return FieldInfo{}, err
	}
	descIdx, err := c.U2()
	if err != nil {
		return FieldInfo{}, err
	}
	attrs, err := parseAttributeList(c)
	if err != nil {
		return FieldInfo{}, err
	}
	return FieldInfo{
		AccessFlags: FieldAccessFlags(flags),
		Name:        PoolRef[Utf8Info]{Index: nameIdx},
		Descriptor:  PoolRef[Utf8Info]{Index: descIdx},
		Attributes:  attrs,
	}, nil
}

func parseMethodInfo(c *cursor.Cursor) (MethodInfo, error) {
	flags, err := c.U2()
	if err != nil {
		return MethodInfo{}, err
	}
	nameIdx, err := c.U2()
	if err != nil {
		return MethodInfo{}, err
	}
	descIdx, err := c.U2()
	if err != nil {
		return MethodInfo{}, err
	}
	attrs, err := parseAttributeList(c)
	if err != nil {
		return MethodInfo{}, err
	}
	return MethodInfo{
		AccessFlags: MethodAccessFlags(flags),
		Name:        PoolRef[Utf8Info]{Index: nameIdx},
		Descriptor:  PoolRef[Utf8Info]{Index: descIdx},
		Attributes:  attrs,
	}, nil
}

// parseAttributeList captures a u2-count-prefixed attribute table as
// opaque, per-entry byte windows (spec §4.3's "pass 3 captures, resolve
// phase decodes" split). Every AttributeInfo starts life with an
// UnknownAttribute body.
func parseAttributeList(c *cursor.Cursor) ([]AttributeInfo, error) {
	count, err := c.U2()
	if err != nil {
		return nil, err
	}
	out := make([]AttributeInfo, count)
	for i := range out {
		nameIdx, err := c.U2()
		if err != nil {
			return nil, err
		}
		length, err := c.U4()
		if err != nil {
			return nil, err
		}
		raw, err := c.Bytes(length)
		if err != nil {
			return nil, err
		}
		out[i] = AttributeInfo{
			Name:   PoolRef[Utf8Info]{Index: nameIdx},
			Length: length,
			Body:   UnknownAttribute{Raw: raw},
		}
	}
	return out, nil
}
