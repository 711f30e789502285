package entity

// WildcardScope es la representación persistida/serializada de "todas las
// sucursales". Solo existe en el borde (DB y claims JWT); dentro del dominio
// el ámbito es el tipo etiquetado BranchScope, no una comparación de centinela.
const WildcardScope = "*"

// AggregateAllBranches valor de branchId que los roles elevados usan en
// consultas de reportes para agregar todas las sucursales.
const AggregateAllBranches = "all"

// BranchScope ámbito de sucursales de un usuario: todas, o exactamente una.
// Variante etiquetada en lugar del string mágico "*" del sistema legado, para
// que rol y ámbito sean campos ortogonales.
type BranchScope struct {
	all  bool
	code string
}

// AllBranches ámbito con acceso a todas las sucursales.
func AllBranches() BranchScope { return BranchScope{all: true} }

// OneBranch ámbito restringido a una única sucursal.
func OneBranch(code string) BranchScope { return BranchScope{code: code} }

// NoBranches ámbito vacío (manager sin sucursal asignada).
func NoBranches() BranchScope { return BranchScope{} }

// ParseBranchScope interpreta la forma persistida: "*" → todas, código → una,
// vacío → ninguna.
func ParseBranchScope(raw string) BranchScope {
	if raw == WildcardScope {
		return AllBranches()
	}
	if raw == "" {
		return NoBranches()
	}
	return OneBranch(raw)
}

// All indica si el ámbito cubre todas las sucursales.
func (s BranchScope) All() bool { return s.all }

// Code devuelve el código de la sucursal asignada ("" si All o vacío).
func (s BranchScope) Code() string {
	if s.all {
		return ""
	}
	return s.code
}

// Allows indica si el ámbito autoriza operar sobre la sucursal dada.
func (s BranchScope) Allows(branchCode string) bool {
	if s.all {
		return true
	}
	return s.code != "" && s.code == branchCode
}

// String devuelve la forma persistida del ámbito.
func (s BranchScope) String() string {
	if s.all {
		return WildcardScope
	}
	return s.code
}
