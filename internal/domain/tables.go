package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysUser{},
	&SysUserToken{},
	// Store
	&Product{},
	&Cart{},
	&CartItem{},
	&Order{},
	&OrderItem{},
}
