package user

// Area representa uma tela do sistema protegida por papel
type Area string

const (
	AreaPDV     Area = "pdv"
	AreaKitchen Area = "cozinha"
	AreaCashier Area = "caixa"
	AreaAdmin   Area = "admin"
)

var areaRoles = map[Area][]Role{
	AreaPDV:     {RoleAdmin, RoleCashier, RoleWaiter},
	AreaKitchen: {RoleAdmin, RoleKitchen},
	AreaCashier: {RoleAdmin, RoleCashier},
	AreaAdmin:   {RoleAdmin},
}

var homePaths = map[Role]string{
	RoleAdmin:   "/admin",
	RoleCashier: "/caixa",
	RoleKitchen: "/cozinha",
	RoleWaiter:  "/pdv",
}

// RolesFor retorna os papéis com acesso à área
func RolesFor(area Area) []Role {
	return areaRoles[area]
}

// CanAccess verifica se o papel pode acessar a área
func (r Role) CanAccess(area Area) bool {
	for _, allowed := range areaRoles[area] {
		if allowed == r {
			return true
		}
	}
	return false
}

// HomePath retorna a tela inicial do papel
func (r Role) HomePath() string {
	if path, ok := homePaths[r]; ok {
		return path
	}
	return "/login"
}

// Areas lista as áreas acessíveis pelo papel
func (r Role) Areas() []Area {
	var areas []Area
	for _, a := range []Area{AreaPDV, AreaKitchen, AreaCashier, AreaAdmin} {
		if r.CanAccess(a) {
			areas = append(areas, a)
		}
	}
	return areas
}
