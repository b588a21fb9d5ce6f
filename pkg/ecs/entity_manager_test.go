package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

type testTagComponent struct{}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if !em.Exists(id2) {
		t.Error("created entity should exist")
	}
	if em.EntityCount() != 2 {
		t.Errorf("EntityCount = %d, want 2", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testPositionComponent{X: 100, Y: 200})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}
}

func TestAddComponentToMissingEntity(t *testing.T) {
	em := NewEntityManager()

	// 不存在的实体上添加组件应被忽略
	em.AddComponent(EntityID(42), &testPositionComponent{})
	if em.HasComponent(EntityID(42), reflect.TypeOf(&testPositionComponent{})) {
		t.Error("component must not be attached to a missing entity")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.Exists(id) {
		t.Error("Entity should still exist before cleanup")
	}

	// 清理后实体消失
	em.RemoveMarkedEntities()
	if em.Exists(id) || em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Entity should be removed after cleanup")
	}
}

// TestGetEntitiesWithOrder 查询结果必须按 ID 升序，系统依赖此顺序保证每帧更新顺序固定
func TestGetEntitiesWithOrder(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0, 20)
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{X: float64(i)})
		ids = append(ids, id)
	}

	for round := 0; round < 5; round++ {
		got := em.GetEntitiesWith(reflect.TypeOf(&testPositionComponent{}))
		if len(got) != len(ids) {
			t.Fatalf("expected %d entities, got %d", len(ids), len(got))
		}
		for i := range got {
			if got[i] != ids[i] {
				t.Fatalf("round %d: index %d = %d, want %d", round, i, got[i], ids[i])
			}
		}
	}
}

func TestGenericHelpers(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	AddComponent(em, id1, &testPositionComponent{X: 1})
	AddComponent(em, id1, &testVelocityComponent{VX: 2})

	id2 := em.CreateEntity()
	AddComponent(em, id2, &testPositionComponent{X: 3})
	AddComponent(em, id2, &testTagComponent{})

	pos, ok := GetComponent[*testPositionComponent](em, id2)
	if !ok || pos.X != 3 {
		t.Fatalf("GetComponent = %+v, %v", pos, ok)
	}
	if _, ok := GetComponent[*testVelocityComponent](em, id2); ok {
		t.Error("id2 has no velocity")
	}

	if got := GetEntitiesWith1[*testPositionComponent](em); len(got) != 2 {
		t.Errorf("GetEntitiesWith1 = %v", got)
	}
	if got := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em); len(got) != 1 || got[0] != id1 {
		t.Errorf("GetEntitiesWith2 = %v", got)
	}
	if got := GetEntitiesWith3[*testPositionComponent, *testVelocityComponent, *testTagComponent](em); len(got) != 0 {
		t.Errorf("GetEntitiesWith3 = %v", got)
	}

	RemoveComponent[*testTagComponent](em, id2)
	if HasComponent[*testTagComponent](em, id2) {
		t.Error("tag should be removed")
	}
	if !HasComponent[*testPositionComponent](em, id2) {
		t.Error("position should remain")
	}
}

func TestDestroyMultipleEntities(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()

	for _, id := range []EntityID{id1, id2, id3} {
		AddComponent(em, id, &testPositionComponent{})
	}

	// 标记两个实体删除
	em.DestroyEntity(id1)
	em.DestroyEntity(id3)
	em.RemoveMarkedEntities()

	got := GetEntitiesWith1[*testPositionComponent](em)
	if len(got) != 1 || got[0] != id2 {
		t.Errorf("only id2 should remain, got %v", got)
	}
}
