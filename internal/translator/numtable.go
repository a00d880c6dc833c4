package translator

import "github.com/wasmi-go/wasmi/internal/ir"

// numInfo describes how to lower one Numeric operator to its general
// (non-fused) IR opcode, plus the type signature needed to decide whether an
// operand may stay an immediate/local provider or must be materialized into
// a register.
type numInfo struct {
	op       ir.Opcode
	unary    bool
	resultTy byte // value.Type, kept as byte to avoid import cycle noise
}

// numericTable maps every Numeric operator to its general-form opcode. This
// is the declarative table (opcode name, operand schema, semantic function)
// that generates the lowering rather than a hand-written switch per
// mnemonic; the handful of opcodes with a fused 16-bit-immediate sibling
// are special-cased in translator.go's emitBinary rather than listed again
// here.
var numericTable = map[Numeric]numInfo{
	NumI32Add:    {op: ir.OpI32Add},
	NumI32Sub:    {op: ir.OpI32Sub},
	NumI32Mul:    {op: ir.OpI32Mul},
	NumI32DivS:   {op: ir.OpI32DivS},
	NumI32DivU:   {op: ir.OpI32DivU},
	NumI32RemS:   {op: ir.OpI32RemS},
	NumI32RemU:   {op: ir.OpI32RemU},
	NumI32And:    {op: ir.OpI32And},
	NumI32Or:     {op: ir.OpI32Or},
	NumI32Xor:    {op: ir.OpI32Xor},
	NumI32Shl:    {op: ir.OpI32Shl},
	NumI32ShrS:   {op: ir.OpI32ShrS},
	NumI32ShrU:   {op: ir.OpI32ShrU},
	NumI32Rotl:   {op: ir.OpI32Rotl},
	NumI32Rotr:   {op: ir.OpI32Rotr},
	NumI32Clz:    {op: ir.OpI32Clz, unary: true},
	NumI32Ctz:    {op: ir.OpI32Ctz, unary: true},
	NumI32Popcnt: {op: ir.OpI32Popcnt, unary: true},
	NumI32Eqz:    {op: ir.OpI32Eqz, unary: true},
	NumI32Eq:     {op: ir.OpI32Eq},
	NumI32Ne:     {op: ir.OpI32Ne},
	NumI32LtS:    {op: ir.OpI32LtS},
	NumI32LtU:    {op: ir.OpI32LtU},
	NumI32GtS:    {op: ir.OpI32GtS},
	NumI32GtU:    {op: ir.OpI32GtU},
	NumI32LeS:    {op: ir.OpI32LeS},
	NumI32LeU:    {op: ir.OpI32LeU},
	NumI32GeS:    {op: ir.OpI32GeS},
	NumI32GeU:    {op: ir.OpI32GeU},

	NumI64Add:    {op: ir.OpI64Add},
	NumI64Sub:    {op: ir.OpI64Sub},
	NumI64Mul:    {op: ir.OpI64Mul},
	NumI64DivS:   {op: ir.OpI64DivS},
	NumI64DivU:   {op: ir.OpI64DivU},
	NumI64RemS:   {op: ir.OpI64RemS},
	NumI64RemU:   {op: ir.OpI64RemU},
	NumI64And:    {op: ir.OpI64And},
	NumI64Or:     {op: ir.OpI64Or},
	NumI64Xor:    {op: ir.OpI64Xor},
	NumI64Shl:    {op: ir.OpI64Shl},
	NumI64ShrS:   {op: ir.OpI64ShrS},
	NumI64ShrU:   {op: ir.OpI64ShrU},
	NumI64Rotl:   {op: ir.OpI64Rotl},
	NumI64Rotr:   {op: ir.OpI64Rotr},
	NumI64Clz:    {op: ir.OpI64Clz, unary: true},
	NumI64Ctz:    {op: ir.OpI64Ctz, unary: true},
	NumI64Popcnt: {op: ir.OpI64Popcnt, unary: true},
	NumI64Eqz:    {op: ir.OpI64Eqz, unary: true},
	NumI64Eq:     {op: ir.OpI64Eq},
	NumI64Ne:     {op: ir.OpI64Ne},
	NumI64LtS:    {op: ir.OpI64LtS},
	NumI64LtU:    {op: ir.OpI64LtU},
	NumI64GtS:    {op: ir.OpI64GtS},
	NumI64GtU:    {op: ir.OpI64GtU},
	NumI64LeS:    {op: ir.OpI64LeS},
	NumI64LeU:    {op: ir.OpI64LeU},
	NumI64GeS:    {op: ir.OpI64GeS},
	NumI64GeU:    {op: ir.OpI64GeU},

	NumF32Add:      {op: ir.OpF32Add},
	NumF32Sub:      {op: ir.OpF32Sub},
	NumF32Mul:      {op: ir.OpF32Mul},
	NumF32Div:      {op: ir.OpF32Div},
	NumF32Abs:      {op: ir.OpF32Abs, unary: true},
	NumF32Neg:      {op: ir.OpF32Neg, unary: true},
	NumF32Ceil:     {op: ir.OpF32Ceil, unary: true},
	NumF32Floor:    {op: ir.OpF32Floor, unary: true},
	NumF32Trunc:    {op: ir.OpF32Trunc, unary: true},
	NumF32Nearest:  {op: ir.OpF32Nearest, unary: true},
	NumF32Sqrt:     {op: ir.OpF32Sqrt, unary: true},
	NumF32Min:      {op: ir.OpF32Min},
	NumF32Max:      {op: ir.OpF32Max},
	NumF32Copysign: {op: ir.OpF32Copysign},
	NumF32Eq:       {op: ir.OpF32Eq},
	NumF32Ne:       {op: ir.OpF32Ne},
	NumF32Lt:       {op: ir.OpF32Lt},
	NumF32Gt:       {op: ir.OpF32Gt},
	NumF32Le:       {op: ir.OpF32Le},
	NumF32Ge:       {op: ir.OpF32Ge},

	NumF64Add:      {op: ir.OpF64Add},
	NumF64Sub:      {op: ir.OpF64Sub},
	NumF64Mul:      {op: ir.OpF64Mul},
	NumF64Div:      {op: ir.OpF64Div},
	NumF64Abs:      {op: ir.OpF64Abs, unary: true},
	NumF64Neg:      {op: ir.OpF64Neg, unary: true},
	NumF64Ceil:     {op: ir.OpF64Ceil, unary: true},
	NumF64Floor:    {op: ir.OpF64Floor, unary: true},
	NumF64Trunc:    {op: ir.OpF64Trunc, unary: true},
	NumF64Nearest:  {op: ir.OpF64Nearest, unary: true},
	NumF64Sqrt:     {op: ir.OpF64Sqrt, unary: true},
	NumF64Min:      {op: ir.OpF64Min},
	NumF64Max:      {op: ir.OpF64Max},
	NumF64Copysign: {op: ir.OpF64Copysign},
	NumF64Eq:       {op: ir.OpF64Eq},
	NumF64Ne:       {op: ir.OpF64Ne},
	NumF64Lt:       {op: ir.OpF64Lt},
	NumF64Gt:       {op: ir.OpF64Gt},
	NumF64Le:       {op: ir.OpF64Le},
	NumF64Ge:       {op: ir.OpF64Ge},

	NumI32WrapI64:        {op: ir.OpI32WrapI64, unary: true},
	NumI64ExtendI32S:     {op: ir.OpI64ExtendI32S, unary: true},
	NumI64ExtendI32U:     {op: ir.OpI64ExtendI32U, unary: true},
	NumF32DemoteF64:      {op: ir.OpF32DemoteF64, unary: true},
	NumF64PromoteF32:     {op: ir.OpF64PromoteF32, unary: true},
	NumF32ConvertI32S:    {op: ir.OpF32ConvertI32S, unary: true},
	NumF32ConvertI32U:    {op: ir.OpF32ConvertI32U, unary: true},
	NumF32ConvertI64S:    {op: ir.OpF32ConvertI64S, unary: true},
	NumF32ConvertI64U:    {op: ir.OpF32ConvertI64U, unary: true},
	NumF64ConvertI32S:    {op: ir.OpF64ConvertI32S, unary: true},
	NumF64ConvertI32U:    {op: ir.OpF64ConvertI32U, unary: true},
	NumF64ConvertI64S:    {op: ir.OpF64ConvertI64S, unary: true},
	NumF64ConvertI64U:    {op: ir.OpF64ConvertI64U, unary: true},
	NumI32ReinterpretF32: {op: ir.OpI32ReinterpretF32, unary: true},
	NumF32ReinterpretI32: {op: ir.OpF32ReinterpretI32, unary: true},
	NumI64ReinterpretF64: {op: ir.OpI64ReinterpretF64, unary: true},
	NumF64ReinterpretI64: {op: ir.OpF64ReinterpretI64, unary: true},
	NumI32Extend8S:       {op: ir.OpI32Extend8S, unary: true},
	NumI32Extend16S:      {op: ir.OpI32Extend16S, unary: true},
	NumI64Extend8S:       {op: ir.OpI64Extend8S, unary: true},
	NumI64Extend16S:      {op: ir.OpI64Extend16S, unary: true},
	NumI64Extend32S:      {op: ir.OpI64Extend32S, unary: true},
	NumI32TruncF32S:      {op: ir.OpI32TruncF32S, unary: true},
	NumI32TruncF32U:      {op: ir.OpI32TruncF32U, unary: true},
	NumI32TruncF64S:      {op: ir.OpI32TruncF64S, unary: true},
	NumI32TruncF64U:      {op: ir.OpI32TruncF64U, unary: true},
	NumI64TruncF32S:      {op: ir.OpI64TruncF32S, unary: true},
	NumI64TruncF32U:      {op: ir.OpI64TruncF32U, unary: true},
	NumI64TruncF64S:      {op: ir.OpI64TruncF64S, unary: true},
	NumI64TruncF64U:      {op: ir.OpI64TruncF64U, unary: true},
	NumI32TruncSatF32S:   {op: ir.OpI32TruncSatF32S, unary: true},
	NumI32TruncSatF32U:   {op: ir.OpI32TruncSatF32U, unary: true},
	NumI32TruncSatF64S:   {op: ir.OpI32TruncSatF64S, unary: true},
	NumI32TruncSatF64U:   {op: ir.OpI32TruncSatF64U, unary: true},
	NumI64TruncSatF32S:   {op: ir.OpI64TruncSatF32S, unary: true},
	NumI64TruncSatF32U:   {op: ir.OpI64TruncSatF32U, unary: true},
	NumI64TruncSatF64S:   {op: ir.OpI64TruncSatF64S, unary: true},
	NumI64TruncSatF64U:   {op: ir.OpI64TruncSatF64U, unary: true},
}

// isComparison reports whether n is a comparison operator, whose result is
// an i32 (0 or 1) whatever its operand type; emitBinary and emitUnary use it
// to type the destination temp.
func (n Numeric) isComparison() bool {
	switch n {
	case NumI32Eq, NumI32Ne, NumI32LtS, NumI32LtU, NumI32GtS, NumI32GtU, NumI32LeS, NumI32LeU, NumI32GeS, NumI32GeU,
		NumI64Eq, NumI64Ne, NumI64LtS, NumI64LtU, NumI64GtS, NumI64GtU, NumI64LeS, NumI64LeU, NumI64GeS, NumI64GeU,
		NumF32Eq, NumF32Ne, NumF32Lt, NumF32Gt, NumF32Le, NumF32Ge,
		NumF64Eq, NumF64Ne, NumF64Lt, NumF64Gt, NumF64Le, NumF64Ge,
		NumI32Eqz, NumI64Eqz:
		return true
	}
	return false
}

// comparatorFor returns the ir.Comparator a comparison Numeric corresponds
// to, for compare+branch/compare+select fusion. ok is false for
// non-comparison operators.
func comparatorFor(n Numeric) (ir.Comparator, bool) {
	switch n {
	case NumI32Eq:
		return ir.CmpI32Eq, true
	case NumI32Ne:
		return ir.CmpI32Ne, true
	case NumI32LtS:
		return ir.CmpI32LtS, true
	case NumI32LtU:
		return ir.CmpI32LtU, true
	case NumI32GtS:
		return ir.CmpI32GtS, true
	case NumI32GtU:
		return ir.CmpI32GtU, true
	case NumI32LeS:
		return ir.CmpI32LeS, true
	case NumI32LeU:
		return ir.CmpI32LeU, true
	case NumI32GeS:
		return ir.CmpI32GeS, true
	case NumI32GeU:
		return ir.CmpI32GeU, true
	case NumI64Eq:
		return ir.CmpI64Eq, true
	case NumI64Ne:
		return ir.CmpI64Ne, true
	case NumI64LtS:
		return ir.CmpI64LtS, true
	case NumI64LtU:
		return ir.CmpI64LtU, true
	case NumI64GtS:
		return ir.CmpI64GtS, true
	case NumI64GtU:
		return ir.CmpI64GtU, true
	case NumI64LeS:
		return ir.CmpI64LeS, true
	case NumI64LeU:
		return ir.CmpI64LeU, true
	case NumI64GeS:
		return ir.CmpI64GeS, true
	case NumI64GeU:
		return ir.CmpI64GeU, true
	case NumF32Eq:
		return ir.CmpF32Eq, true
	case NumF32Ne:
		return ir.CmpF32Ne, true
	case NumF64Eq:
		return ir.CmpF64Eq, true
	case NumF64Ne:
		return ir.CmpF64Ne, true
	}
	return 0, false
}
