package graph

// Opcode enumerates the instruction opcodes this package's
// instruction types carry. It mixes opcodes the optimizer reads
// (produced upstream) with the specialized opcodes it introduces
// (sp_*, const_i64_16, goto, ...) that codegen must honor.
type Opcode int

const (
	OpUnknown Opcode = iota

	OpSet
	OpIfI
	OpUnlessI
	OpIfN
	OpUnlessN
	OpIfO
	OpUnlessO
	OpIfNonNull

	OpIsList
	OpIsHash
	OpIsInt
	OpIsNum
	OpIsStr
	OpIsConcrete
	OpIsType
	OpIsNonNull

	OpFindMeth
	OpCan
	OpCanS

	OpHllize
	OpDecont

	OpAssertParamCheck
	OpCoerceIN

	OpCreate
	OpBindAttrI
	OpBindAttrN
	OpBindAttrS
	OpBindAttrO
	OpBindAttrsI
	OpBindAttrsN
	OpBindAttrsS
	OpBindAttrsO
	OpGetAttrI
	OpGetAttrN
	OpGetAttrS
	OpGetAttrO
	OpGetAttrsI
	OpGetAttrsN
	OpGetAttrsS
	OpGetAttrsO
	OpBoxI
	OpBoxN
	OpBoxS
	OpUnboxI
	OpUnboxN
	OpUnboxS
	OpElems

	OpGetLexStaticO
	OpGetLexPerInvTypeO

	OpSpLog
	OpSpOsrFinalize

	OpPrepargs
	OpArgI
	OpArgN
	OpArgS
	OpArgO
	OpArgConstI
	OpArgConstN
	OpArgConstS

	OpInvokeV
	OpInvokeI
	OpInvokeN
	OpInvokeS
	OpInvokeO

	// Opcodes the optimizer introduces; codegen must understand them.
	OpSpGetSpeshSlot
	OpSpFindMeth
	OpSpFastInvokeV
	OpSpFastInvokeI
	OpSpFastInvokeN
	OpSpFastInvokeS
	OpSpFastInvokeO
	OpGoto
	OpConstI64_16
	OpConstN64

	OpPhi
)

// OperandRWMask describes how an instruction reads or writes a given
// operand position, mirroring the source VM's per-operand masks used
// to validate that rewrites still respect read/write shape.
type OperandRWMask int

const (
	RWNone OperandRWMask = iota
	RWReadReg
	RWWriteReg
	RWLiteral
)

// OpcodeInfo is the static descriptor for an opcode: whether it is
// pure (side-effect free, hence eligible for dead-code elimination
// when its result is unused) and the read/write mask of each operand
// position.
type OpcodeInfo struct {
	Opcode   Opcode
	Name     string
	Pure     bool
	Operands []OperandRWMask
}

// opcodeTable is the static descriptor table, populated for every
// opcode this package models. Instructions look themselves up by
// their Opcode field (Instruction.Info) to get purity/shape facts
// without duplicating them.
var opcodeTable = map[Opcode]OpcodeInfo{
	OpSet:         {OpSet, "set", true, []OperandRWMask{RWWriteReg, RWReadReg}},
	OpIfI:         {OpIfI, "if_i", false, []OperandRWMask{RWReadReg, RWLiteral}},
	OpUnlessI:     {OpUnlessI, "unless_i", false, []OperandRWMask{RWReadReg, RWLiteral}},
	OpIfN:         {OpIfN, "if_n", false, []OperandRWMask{RWReadReg, RWLiteral}},
	OpUnlessN:     {OpUnlessN, "unless_n", false, []OperandRWMask{RWReadReg, RWLiteral}},
	OpIfO:         {OpIfO, "if_o", false, []OperandRWMask{RWReadReg, RWLiteral}},
	OpUnlessO:     {OpUnlessO, "unless_o", false, []OperandRWMask{RWReadReg, RWLiteral}},
	OpIfNonNull:   {OpIfNonNull, "ifnonnull", false, []OperandRWMask{RWReadReg, RWLiteral}},
	OpIsList:      {OpIsList, "islist", true, []OperandRWMask{RWWriteReg, RWReadReg}},
	OpIsHash:      {OpIsHash, "ishash", true, []OperandRWMask{RWWriteReg, RWReadReg}},
	OpIsInt:       {OpIsInt, "isint", true, []OperandRWMask{RWWriteReg, RWReadReg}},
	OpIsNum:       {OpIsNum, "isnum", true, []OperandRWMask{RWWriteReg, RWReadReg}},
	OpIsStr:       {OpIsStr, "isstr", true, []OperandRWMask{RWWriteReg, RWReadReg}},
	OpIsConcrete:  {OpIsConcrete, "isconcrete", true, []OperandRWMask{RWWriteReg, RWReadReg}},
	OpIsType:      {OpIsType, "istype", true, []OperandRWMask{RWWriteReg, RWReadReg, RWReadReg}},
	OpIsNonNull:   {OpIsNonNull, "isnonnull", true, []OperandRWMask{RWWriteReg, RWReadReg}},
	OpFindMeth:    {OpFindMeth, "findmeth", true, []OperandRWMask{RWWriteReg, RWReadReg, RWLiteral}},
	OpCan:         {OpCan, "can", true, []OperandRWMask{RWWriteReg, RWReadReg, RWLiteral}},
	OpCanS:        {OpCanS, "can_s", true, []OperandRWMask{RWWriteReg, RWReadReg, RWReadReg}},
	OpHllize:      {OpHllize, "hllize", true, []OperandRWMask{RWWriteReg, RWReadReg}},
	OpDecont:      {OpDecont, "decont", true, []OperandRWMask{RWWriteReg, RWReadReg}},
	OpAssertParamCheck: {OpAssertParamCheck, "assertparamcheck", false, []OperandRWMask{RWReadReg}},
	OpCoerceIN:    {OpCoerceIN, "coerce_in", true, []OperandRWMask{RWWriteReg, RWReadReg}},
	OpCreate:      {OpCreate, "create", false, []OperandRWMask{RWWriteReg, RWReadReg}},
	OpBindAttrI:   {OpBindAttrI, "bindattr_i", false, []OperandRWMask{RWReadReg, RWReadReg, RWLiteral, RWReadReg, RWLiteral}},
	OpBindAttrN:   {OpBindAttrN, "bindattr_n", false, []OperandRWMask{RWReadReg, RWReadReg, RWLiteral, RWReadReg, RWLiteral}},
	OpBindAttrS:   {OpBindAttrS, "bindattr_s", false, []OperandRWMask{RWReadReg, RWReadReg, RWLiteral, RWReadReg, RWLiteral}},
	OpBindAttrO:   {OpBindAttrO, "bindattr_o", false, []OperandRWMask{RWReadReg, RWReadReg, RWLiteral, RWReadReg, RWLiteral}},
	OpBindAttrsI:  {OpBindAttrsI, "bindattrs_i", false, []OperandRWMask{RWReadReg, RWReadReg, RWReadReg, RWReadReg}},
	OpBindAttrsN:  {OpBindAttrsN, "bindattrs_n", false, []OperandRWMask{RWReadReg, RWReadReg, RWReadReg, RWReadReg}},
	OpBindAttrsS:  {OpBindAttrsS, "bindattrs_s", false, []OperandRWMask{RWReadReg, RWReadReg, RWReadReg, RWReadReg}},
	OpBindAttrsO:  {OpBindAttrsO, "bindattrs_o", false, []OperandRWMask{RWReadReg, RWReadReg, RWReadReg, RWReadReg}},
	OpGetAttrI:    {OpGetAttrI, "getattr_i", true, []OperandRWMask{RWWriteReg, RWReadReg, RWLiteral, RWLiteral}},
	OpGetAttrN:    {OpGetAttrN, "getattr_n", true, []OperandRWMask{RWWriteReg, RWReadReg, RWLiteral, RWLiteral}},
	OpGetAttrS:    {OpGetAttrS, "getattr_s", true, []OperandRWMask{RWWriteReg, RWReadReg, RWLiteral, RWLiteral}},
	OpGetAttrO:    {OpGetAttrO, "getattr_o", true, []OperandRWMask{RWWriteReg, RWReadReg, RWLiteral, RWLiteral}},
	OpGetAttrsI:   {OpGetAttrsI, "getattrs_i", true, []OperandRWMask{RWWriteReg, RWReadReg, RWReadReg}},
	OpGetAttrsN:   {OpGetAttrsN, "getattrs_n", true, []OperandRWMask{RWWriteReg, RWReadReg, RWReadReg}},
	OpGetAttrsS:   {OpGetAttrsS, "getattrs_s", true, []OperandRWMask{RWWriteReg, RWReadReg, RWReadReg}},
	OpGetAttrsO:   {OpGetAttrsO, "getattrs_o", true, []OperandRWMask{RWWriteReg, RWReadReg, RWReadReg}},
	OpBoxI:        {OpBoxI, "box_i", false, []OperandRWMask{RWWriteReg, RWReadReg, RWReadReg}},
	OpBoxN:        {OpBoxN, "box_n", false, []OperandRWMask{RWWriteReg, RWReadReg, RWReadReg}},
	OpBoxS:        {OpBoxS, "box_s", false, []OperandRWMask{RWWriteReg, RWReadReg, RWReadReg}},
	OpUnboxI:      {OpUnboxI, "unbox_i", true, []OperandRWMask{RWWriteReg, RWReadReg}},
	OpUnboxN:      {OpUnboxN, "unbox_n", true, []OperandRWMask{RWWriteReg, RWReadReg}},
	OpUnboxS:      {OpUnboxS, "unbox_s", true, []OperandRWMask{RWWriteReg, RWReadReg}},
	OpElems:       {OpElems, "elems", true, []OperandRWMask{RWWriteReg, RWReadReg}},
	OpGetLexStaticO:      {OpGetLexStaticO, "getlexstatic_o", true, []OperandRWMask{RWWriteReg, RWLiteral}},
	OpGetLexPerInvTypeO:  {OpGetLexPerInvTypeO, "getlexperinvtype_o", true, []OperandRWMask{RWWriteReg, RWLiteral}},
	OpSpLog:          {OpSpLog, "sp_log", false, []OperandRWMask{RWLiteral, RWLiteral}},
	OpSpOsrFinalize:  {OpSpOsrFinalize, "sp_osrfinalize", false, nil},
	OpPrepargs:       {OpPrepargs, "prepargs", false, []OperandRWMask{RWLiteral}},
	OpArgI:           {OpArgI, "arg_i", false, []OperandRWMask{RWLiteral, RWReadReg}},
	OpArgN:           {OpArgN, "arg_n", false, []OperandRWMask{RWLiteral, RWReadReg}},
	OpArgS:           {OpArgS, "arg_s", false, []OperandRWMask{RWLiteral, RWReadReg}},
	OpArgO:           {OpArgO, "arg_o", false, []OperandRWMask{RWLiteral, RWReadReg}},
	OpArgConstI:      {OpArgConstI, "argconst_i", false, []OperandRWMask{RWLiteral, RWLiteral}},
	OpArgConstN:      {OpArgConstN, "argconst_n", false, []OperandRWMask{RWLiteral, RWLiteral}},
	OpArgConstS:      {OpArgConstS, "argconst_s", false, []OperandRWMask{RWLiteral, RWLiteral}},
	OpInvokeV:        {OpInvokeV, "invoke_v", false, []OperandRWMask{RWReadReg}},
	OpInvokeI:        {OpInvokeI, "invoke_i", false, []OperandRWMask{RWWriteReg, RWReadReg}},
	OpInvokeN:        {OpInvokeN, "invoke_n", false, []OperandRWMask{RWWriteReg, RWReadReg}},
	OpInvokeS:        {OpInvokeS, "invoke_s", false, []OperandRWMask{RWWriteReg, RWReadReg}},
	OpInvokeO:        {OpInvokeO, "invoke_o", false, []OperandRWMask{RWWriteReg, RWReadReg}},
	OpSpGetSpeshSlot: {OpSpGetSpeshSlot, "sp_getspeshslot", true, []OperandRWMask{RWWriteReg, RWLiteral}},
	OpSpFindMeth:     {OpSpFindMeth, "sp_findmeth", true, []OperandRWMask{RWWriteReg, RWReadReg, RWLiteral, RWLiteral}},
	OpSpFastInvokeV:  {OpSpFastInvokeV, "sp_fastinvoke_v", false, []OperandRWMask{RWReadReg, RWLiteral}},
	OpSpFastInvokeI:  {OpSpFastInvokeI, "sp_fastinvoke_i", false, []OperandRWMask{RWWriteReg, RWReadReg, RWLiteral}},
	OpSpFastInvokeN:  {OpSpFastInvokeN, "sp_fastinvoke_n", false, []OperandRWMask{RWWriteReg, RWReadReg, RWLiteral}},
	OpSpFastInvokeS:  {OpSpFastInvokeS, "sp_fastinvoke_s", false, []OperandRWMask{RWWriteReg, RWReadReg, RWLiteral}},
	OpSpFastInvokeO:  {OpSpFastInvokeO, "sp_fastinvoke_o", false, []OperandRWMask{RWWriteReg, RWReadReg, RWLiteral}},
	OpGoto:           {OpGoto, "goto", false, []OperandRWMask{RWLiteral}},
	OpConstI64_16:    {OpConstI64_16, "const_i64_16", true, []OperandRWMask{RWWriteReg, RWLiteral}},
	OpConstN64:       {OpConstN64, "const_n64", true, []OperandRWMask{RWWriteReg, RWLiteral}},
	OpPhi:            {OpPhi, "phi", true, []OperandRWMask{RWWriteReg}},
}

// Info returns the static descriptor for op, or a zero-value,
// not-found OpcodeInfo if op is unrecognized.
func Info(op Opcode) (OpcodeInfo, bool) {
	info, ok := opcodeTable[op]
	return info, ok
}

var opcodeByName map[string]Opcode

func init() {
	opcodeByName = make(map[string]Opcode, len(opcodeTable))
	for op, info := range opcodeTable {
		opcodeByName[info.Name] = op
	}
}

// OpcodeByName looks up an opcode by its textual mnemonic, the
// inverse of Opcode.String. Used by package textir to parse the
// notation's instruction mnemonics back into Opcode values.
func OpcodeByName(name string) (Opcode, bool) {
	op, ok := opcodeByName[name]
	return op, ok
}

func (o Opcode) String() string {
	if info, ok := opcodeTable[o]; ok {
		return info.Name
	}
	return "unknown"
}
