package domain

var Tables = []interface{}{
	&ShopUser{},
	&Product{},
	&Order{},
}
