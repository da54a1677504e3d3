// ledger/key.go
package ledger

import "Gin_postgres_redis_equipment_loan/models"

// SKUKey 一个逻辑产品型号：同名/同品牌/同类型/同分类的设备彼此可互换。
// 用值结构做 map key，结构相等、区分大小写，避免字符串拼接的分隔符问题。
type SKUKey struct {
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Type     string `json:"type"`
	Category string `json:"category"`
}

func KeyOf(u models.Unit) SKUKey {
	return SKUKey{Name: u.Name, Brand: u.Brand, Type: u.Type, Category: u.Category}
}

func LineKey(l models.ReservationLine) SKUKey {
	return SKUKey{Name: l.Name, Brand: l.Brand, Type: l.Type, Category: l.Category}
}

// Less 给聚合结果一个稳定的展示顺序
func (k SKUKey) Less(o SKUKey) bool {
	if k.Name != o.Name {
		return k.Name < o.Name
	}
	if k.Brand != o.Brand {
		return k.Brand < o.Brand
	}
	if k.Type != o.Type {
		return k.Type < o.Type
	}
	return k.Category < o.Category
}
